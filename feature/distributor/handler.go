package distributor

import (
	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for distributor sync operations.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/run", h.HandleRunSync)
	group.Get("/lookup/:sku", h.HandleLookup)
}

// HandleRunSync triggers a full distributor sync and returns its report.
// @Summary Run distributor sync
// @Description Fetch the distributor inventory feed and reconcile it against local products.
// @Tags sync
// @Produce json
// @Success 200 {object} models.SyncResult "Sync report; inspect errors even when success is true"
// @Router /sync/run [post]
func (h *Handler) HandleRunSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("sync run requested")

	result := h.service.RunSync(c.Context())

	// The report carries its own success flag; record-level errors can
	// coexist with an overall-successful run.
	return c.JSON(result)
}

// HandleLookup looks up a single SKU in the distributor feed.
// @Summary Lookup SKU at distributor
// @Description Fetch the distributor feed and return quantities and cost for one SKU.
// @Tags sync
// @Produce json
// @Param sku path string true "Business key (SKU or manufacturer part number)"
// @Success 200 {object} models.LookupResult "Feed data for the SKU"
// @Failure 404 {object} map[string]string "SKU not present in feed"
// @Failure 502 {object} map[string]string "Distributor unreachable or feed invalid"
// @Router /sync/lookup/{sku} [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	sku := c.Params("sku")
	l := logger.WithRayID(h.logger, c)

	result, err := h.service.Lookup(c.Context(), sku)
	if err != nil {
		l.Error("lookup failed", zap.String("sku", sku), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "sku not present in distributor feed",
		})
	}

	return c.JSON(result)
}
