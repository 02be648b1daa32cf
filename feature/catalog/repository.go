package catalog

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a product or category does not exist.
var ErrNotFound = errors.New("not found")

// defaultListLimit caps unbounded dashboard queries.
const defaultListLimit = 100

// Repository provides database access for catalog entities. It also
// implements the distributor feature's ProductStore contract: a full read
// snapshot plus targeted partial writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns products matching the filter, most recently updated first.
func (r *Repository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SKUPrefix != "" {
		q = q.Where("sku LIKE ?", filter.SKUPrefix+"%")
	}
	if filter.NameContains != "" {
		q = q.Where("name LIKE ?", "%"+filter.NameContains+"%")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = defaultListLimit
	}

	var products []models.Product
	if err := q.Order("updated_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get returns one product by its surrogate id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// GetBySKU returns one product by its business key.
func (r *Repository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by sku: %w", err)
	}
	return &product, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies the given fields to one product.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one product.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FetchAll returns the full product snapshot used by reconciliation.
func (r *Repository) FetchAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product snapshot: %w", err)
	}
	return products, nil
}

// UpdateByID applies a partial update to one product. Each call is its own
// atomic write; there is no batch transaction around a sync run.
func (r *Repository) UpdateByID(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to apply partial update: %w", result.Error)
	}
	return nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a new category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}
