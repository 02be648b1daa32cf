package supplier

import (
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/feature/supplier/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for supplier management.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the supplier routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/suppliers")
	group.Get("/", h.HandleListSuppliers)
	group.Post("/", h.HandleCreateSupplier)
	group.Post("/mapping/suggest", h.HandleSuggestMapping)
	group.Post("/schema/validate", h.HandleValidateSchema)
	group.Get("/:id", h.HandleGetSupplier)
	group.Put("/:id", h.HandleUpdateSupplier)
	group.Delete("/:id", h.HandleDeleteSupplier)
	group.Post("/:id/test-pull", h.HandleTestPull)
	group.Get("/:id/test-pulls", h.HandleListTestPulls)
}

// HandleListSuppliers returns suppliers, optionally filtered by status.
// @Summary List Suppliers
// @Tags suppliers
// @Produce json
// @Param status query string false "Filter by onboarding status"
// @Success 200 {array} models.Supplier "Suppliers"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /suppliers [get]
func (h *Handler) HandleListSuppliers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	status := models.OnboardingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown onboarding status"})
	}

	suppliers, err := h.service.Repo().List(c.Context(), status)
	if err != nil {
		l.Error("Supplier listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(suppliers)
}

// HandleGetSupplier returns one supplier.
// @Summary Get Supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} models.Supplier "Supplier"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /suppliers/{id} [get]
func (h *Handler) HandleGetSupplier(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	supplier, err := h.service.Repo().Get(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "supplier not found"})
	}
	if err != nil {
		l.Error("Supplier fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(supplier)
}

// HandleCreateSupplier creates a supplier.
// @Summary Create Supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body models.Supplier true "Supplier"
// @Success 201 {object} models.Supplier "Created Supplier"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /suppliers [post]
func (h *Handler) HandleCreateSupplier(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if supplier.Name == "" || supplier.ContactEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and contact_email are required"})
	}
	if supplier.OnboardingStatus != "" && !supplier.OnboardingStatus.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown onboarding status"})
	}

	if err := h.service.Repo().Create(c.Context(), &supplier); err != nil {
		l.Error("Supplier creation failed", zap.String("name", supplier.Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// HandleUpdateSupplier applies a partial update to a supplier.
// @Summary Update Supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param fields body map[string]interface{} true "Fields to update"
// @Success 200 {object} map[string]string "Updated"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /suppliers/{id} [put]
func (h *Handler) HandleUpdateSupplier(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no updatable fields"})
	}
	if raw, ok := fields["onboarding_status"].(string); ok {
		if !models.OnboardingStatus(raw).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown onboarding status"})
		}
	}

	err := h.service.Repo().Update(c.Context(), c.Params("id"), fields)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "supplier not found"})
	}
	if err != nil {
		l.Error("Supplier update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// HandleDeleteSupplier removes a supplier.
// @Summary Delete Supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /suppliers/{id} [delete]
func (h *Handler) HandleDeleteSupplier(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	err := h.service.Repo().Delete(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "supplier not found"})
	}
	if err != nil {
		l.Error("Supplier deletion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// HandleTestPull pulls a bounded sample from the supplier's data source.
// @Summary Test Pull
// @Description Pull a bounded sample of rows from the supplier's configured data source and log the attempt.
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Param limit query int false "Maximum sample rows (default 100)"
// @Success 200 {object} models.TestPullResult "Pull Result"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /suppliers/{id}/test-pull [post]
func (h *Handler) HandleTestPull(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	result, err := h.service.TestPull(c.Context(), c.Params("id"), c.QueryInt("limit"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "supplier not found"})
	}
	if err != nil {
		l.Error("Test pull failed", zap.String("supplier_id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleListTestPulls returns the supplier's recent test-pull history.
// @Summary List Test Pulls
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Param limit query int false "Maximum rows (default 20)"
// @Success 200 {array} models.TestPull "Test Pulls"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /suppliers/{id}/test-pulls [get]
func (h *Handler) HandleListTestPulls(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	pulls, err := h.service.Repo().ListTestPulls(c.Context(), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		l.Error("Test pull listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(pulls)
}

// mappingRequest is the body for mapping suggestion requests.
type mappingRequest struct {
	SampleData []map[string]string      `json:"sample_data"`
	Templates  []models.MappingTemplate `json:"templates"`
}

// HandleSuggestMapping suggests the best mapping template for sample data.
// @Summary Suggest Mapping
// @Tags suppliers
// @Accept json
// @Produce json
// @Param request body mappingRequest true "Sample data and candidate templates"
// @Success 200 {object} map[string]interface{} "Suggestion and confidence"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /suppliers/mapping/suggest [post]
func (h *Handler) HandleSuggestMapping(c *fiber.Ctx) error {
	var req mappingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	suggestion, confidence := SuggestMapping(req.SampleData, req.Templates)
	return c.JSON(fiber.Map{
		"suggestion": suggestion,
		"confidence": confidence,
	})
}

// schemaRequest is the body for schema validation requests.
type schemaRequest struct {
	SampleData []map[string]string `json:"sample_data"`
	Schema     map[string]string   `json:"schema,omitempty"`
}

// HandleValidateSchema validates sample data against a product schema.
// @Summary Validate Schema
// @Description Validate sample feed rows against the expected product schema. Omitting the schema validates against the default product schema.
// @Tags suppliers
// @Accept json
// @Produce json
// @Param request body schemaRequest true "Sample data and optional schema"
// @Success 200 {array} models.SchemaValidationResult "Validation Results"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /suppliers/schema/validate [post]
func (h *Handler) HandleValidateSchema(c *fiber.Ctx) error {
	var req schemaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	results := ValidateSchema(req.SampleData, req.Schema)
	return c.JSON(results)
}
