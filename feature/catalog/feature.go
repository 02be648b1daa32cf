package catalog

import (
	"catalog-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	cache   fiber.Handler
}

// NewFeature creates the catalog feature. cacheHandler may be nil; when set
// it is applied to the read routes only.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, cacheHandler fiber.Handler, log *zap.Logger) *Feature {
	svc := NewService(NewRepository(db), client, bucket, log)
	return &Feature{
		service: svc,
		handler: NewHandler(svc, log),
		cache:   cacheHandler,
	}
}

// Service exposes the catalog service so other features can reuse its
// repository as a product store.
func (f *Feature) Service() *Service { return f.service }

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	// The cache middleware only acts on GET, so writes pass straight through.
	if f.cache != nil {
		app.Use("/products", f.cache)
		app.Use("/categories", f.cache)
	}
	f.handler.RegisterRoutes(app)
	return nil
}
