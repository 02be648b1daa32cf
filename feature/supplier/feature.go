package supplier

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new supplier feature.
func NewFeature(db *gorm.DB, log *zap.Logger) *Feature {
	svc := NewService(NewRepository(db), log)
	return &Feature{
		service: svc,
		handler: NewHandler(svc, log),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "supplier"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
