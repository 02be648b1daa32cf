package supplier

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/feature/supplier/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a supplier does not exist.
var ErrNotFound = errors.New("supplier not found")

// Repository provides database access for suppliers and their test-pull
// audit log.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a supplier repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns suppliers, optionally narrowed to one onboarding status.
func (r *Repository) List(ctx context.Context, status models.OnboardingStatus) ([]models.Supplier, error) {
	q := r.db.WithContext(ctx).Model(&models.Supplier{})
	if status != "" {
		q = q.Where("onboarding_status = ?", status)
	}

	var suppliers []models.Supplier
	if err := q.Order("name").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

// Get returns one supplier by id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return &supplier, nil
}

// Create inserts a new supplier.
func (r *Repository) Create(ctx context.Context, supplier *models.Supplier) error {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of one supplier.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Supplier{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one supplier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LogTestPull records a test-pull attempt. Audit failures are surfaced so
// callers can log them, but a pull result stands regardless.
func (r *Repository) LogTestPull(ctx context.Context, pull *models.TestPull) error {
	if err := r.db.WithContext(ctx).Create(pull).Error; err != nil {
		return fmt.Errorf("failed to log test pull: %w", err)
	}
	return nil
}

// ListTestPulls returns the recent test-pull history for one supplier.
func (r *Repository) ListTestPulls(ctx context.Context, supplierID string, limit int) ([]models.TestPull, error) {
	if limit <= 0 {
		limit = 20
	}
	var pulls []models.TestPull
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Limit(limit).
		Find(&pulls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list test pulls: %w", err)
	}
	return pulls, nil
}
