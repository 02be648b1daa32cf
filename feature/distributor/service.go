package distributor

import (
	"bytes"
	"context"
	"strings"

	"catalog-sync/core/delim"
	"catalog-sync/core/remote"
	"catalog-sync/feature/distributor/models"

	"go.uber.org/zap"
)

// Service runs distributor syncs and point lookups.
type Service struct {
	client remote.Client
	engine *Engine
	store  ProductStore
	cfg    remote.Config
	logger *zap.Logger
}

// NewService creates the distributor service.
func NewService(client remote.Client, store ProductStore, cfg remote.Config, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		engine: NewEngine(store, logger),
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// RunSync performs one full sync pass: connect, fetch, parse, reconcile.
// Connection, transfer, and parse failures are fatal and short-circuit the
// run with Success=false; per-record failures are accumulated in the result
// and never abort the run.
func (s *Service) RunSync(ctx context.Context) *models.SyncResult {
	result := models.NewSyncResult()

	raw, err := s.fetchFeed(ctx)
	if err != nil {
		s.logger.Error("sync fetch failed", zap.Error(err))
		return result.Fail(err)
	}

	records, err := delim.Parse(bytes.NewReader(raw), s.delimiter())
	if err != nil {
		s.logger.Error("sync parse failed", zap.Error(err))
		return result.Fail(err)
	}

	snapshot, err := s.store.FetchAll(ctx)
	if err != nil {
		s.logger.Error("sync snapshot load failed", zap.Error(err))
		return result.Fail(err)
	}

	s.engine.Reconcile(ctx, records, snapshot, result)

	s.logger.Info("sync finished",
		zap.Int("total_records", result.TotalRecords),
		zap.Int("updated_products", result.UpdatedProducts),
		zap.Int("new_products", result.NewProducts),
		zap.Int("errors", len(result.Errors)),
	)
	return result
}

// Lookup fetches the feed and scans it for a single business key. It repeats
// the full connect/fetch/parse cycle on every call; nothing is cached.
// Returns (nil, nil) when the key is absent from the feed.
func (s *Service) Lookup(ctx context.Context, key string) (*models.LookupResult, error) {
	raw, err := s.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	records, err := delim.Parse(bytes.NewReader(raw), s.delimiter())
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		recKey := businessKey(rec)
		if recKey == "" || !strings.EqualFold(recKey, key) {
			continue
		}

		return &models.LookupResult{
			SKU:        recKey,
			Quantities: quantitiesByLocation(rec),
			Cost:       rec.Decimal(priceColumn),
		}, nil
	}

	return nil, nil
}

// fetchFeed retrieves the feed file inside a scoped session; the session is
// torn down on every exit path.
func (s *Service) fetchFeed(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := remote.WithSession(ctx, s.client, func(sess remote.Session) error {
		data, err := sess.Fetch(s.cfg.RemotePath)
		if err != nil {
			return err
		}
		raw = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *Service) delimiter() rune {
	if s.cfg.Delimiter == "" {
		return ','
	}
	return []rune(s.cfg.Delimiter)[0]
}
