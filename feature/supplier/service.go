package supplier

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"catalog-sync/core/delim"
	"catalog-sync/core/remote"
	"catalog-sync/feature/supplier/models"

	"go.uber.org/zap"
)

// defaultSampleLimit bounds a test pull so a full feed never streams
// through the admin API.
const defaultSampleLimit = 100

// Service owns supplier onboarding workflows: test pulls against a
// supplier's data source and mapping/schema assistance.
type Service struct {
	repo      *Repository
	logger    *zap.Logger
	connector func(remote.Config) remote.Client
}

// NewService creates a supplier service.
func NewService(repo *Repository, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		logger:    log,
		connector: remote.NewClient,
	}
}

// Repo exposes the repository for the HTTP handler.
func (s *Service) Repo() *Repository { return s.repo }

// TestPull pulls a bounded sample from the supplier's configured data
// source. The attempt is always logged, success or not; a pull failure is
// reported in the result rather than as an error.
func (s *Service) TestPull(ctx context.Context, supplierID string, limit int) (*models.TestPullResult, error) {
	supplier, err := s.repo.Get(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultSampleLimit {
		limit = defaultSampleLimit
	}

	result := &models.TestPullResult{Timestamp: time.Now()}

	sample, pullErr := s.pullSample(ctx, supplier, limit)
	if pullErr != nil {
		result.Success = false
		result.Message = fmt.Sprintf("Error during test pull: %v", pullErr)
		result.ErrorDetails = map[string]string{"error_message": pullErr.Error()}
	} else {
		result.Success = true
		result.Message = fmt.Sprintf("Successfully pulled sample data from supplier %s", supplierID)
		result.SampleData = sample
	}

	pull := &models.TestPull{
		SupplierID:   supplierID,
		Success:      result.Success,
		Message:      result.Message,
		SampleData:   result.SampleData,
		ErrorDetails: result.ErrorDetails,
	}
	if logErr := s.repo.LogTestPull(ctx, pull); logErr != nil {
		s.logger.Warn("Failed to log test pull",
			zap.String("supplier_id", supplierID), zap.Error(logErr))
	}

	return result, nil
}

func (s *Service) pullSample(ctx context.Context, supplier *models.Supplier, limit int) ([]map[string]string, error) {
	if supplier.DataSources == nil || supplier.DataSources.FTP == nil {
		return nil, fmt.Errorf("supplier has no ftp data source configured")
	}
	ftp := supplier.DataSources.FTP

	cfg := remote.Config{
		Host:           ftp.Host,
		Port:           ftp.Port,
		User:           ftp.Username,
		Password:       ftp.Password,
		PrivateKeyPath: ftp.PrivateKeyPath,
		RemotePath:     ftp.Path,
		Delimiter:      ftp.Delimiter,
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}

	var feed []byte
	err := remote.WithSession(ctx, s.connector(cfg), func(sess remote.Session) error {
		data, err := sess.Fetch(cfg.RemotePath)
		if err != nil {
			return err
		}
		feed = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	records, err := delim.Parse(bytes.NewReader(feed), rune(cfg.Delimiter[0]))
	if err != nil {
		return nil, err
	}
	if len(records) > limit {
		records = records[:limit]
	}

	sample := make([]map[string]string, len(records))
	for i, rec := range records {
		sample[i] = map[string]string(rec)
	}
	return sample, nil
}
