package distributor

import (
	"catalog-sync/core/remote"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the distributor sync endpoints into the application.
type Feature struct {
	service *Service
	logger  *zap.Logger
	enabled bool
}

// NewFeature creates the distributor feature. It is disabled when no
// distributor host is configured.
func NewFeature(store ProductStore, cfg remote.Config, log *zap.Logger) *Feature {
	return &Feature{
		service: NewService(remote.NewClient(cfg), store, cfg, log),
		logger:  log,
		enabled: cfg.Host != "",
	}
}

// Service exposes the sync service for the CLI and scheduler entry points.
func (f *Feature) Service() *Service { return f.service }

// Name returns the feature name.
func (f *Feature) Name() string { return "distributor" }

// IsEnabled reports whether a distributor host is configured.
func (f *Feature) IsEnabled() bool { return f.enabled }

// Load registers the feature routes.
func (f *Feature) Load(app fiber.Router) error {
	handler := NewHandler(f.service, f.logger)
	handler.RegisterRoutes(app)
	return nil
}
