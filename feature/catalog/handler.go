package catalog

import (
	"errors"
	"io"

	"catalog-sync/core/logger"
	"catalog-sync/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the product catalog.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	products := app.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/export", h.HandleExport)
	products.Post("/import", h.HandleImport)
	products.Get("/:id", h.HandleGetProduct)
	products.Post("/", h.HandleCreateProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)

	categories := app.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Post("/", h.HandleCreateCategory)
}

// HandleListProducts returns products matching the query filters.
// @Summary List Products
// @Description List catalog products with optional category, SKU prefix, and name filters.
// @Tags catalog
// @Produce json
// @Param category query string false "Filter by category"
// @Param sku_prefix query string false "Filter by SKU prefix"
// @Param name_contains query string false "Filter by name substring"
// @Param limit query int false "Maximum rows (default 100)"
// @Success 200 {array} models.Product "Products"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /products [get]
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var filter models.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	products, err := h.service.Repo().List(c.Context(), filter)
	if err != nil {
		l.Error("Product listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product by id.
// @Summary Get Product
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product "Product"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/{id} [get]
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	product, err := h.service.Repo().Get(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		l.Error("Product fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product.
// @Summary Create Product
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body models.Product true "Product"
// @Success 201 {object} models.Product "Created Product"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /products [post]
func (h *Handler) HandleCreateProduct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if product.SKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sku is required"})
	}

	if err := h.service.Repo().Create(c.Context(), &product); err != nil {
		l.Error("Product creation failed", zap.String("sku", product.SKU), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to a product.
// @Summary Update Product
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param fields body map[string]interface{} true "Fields to update"
// @Success 200 {object} map[string]string "Updated"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/{id} [put]
func (h *Handler) HandleUpdateProduct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	// The surrogate id and timestamps are not client-writable.
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no updatable fields"})
	}

	err := h.service.Repo().Update(c.Context(), c.Params("id"), fields)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		l.Error("Product update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// HandleDeleteProduct removes a product.
// @Summary Delete Product
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/{id} [delete]
func (h *Handler) HandleDeleteProduct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	err := h.service.Repo().Delete(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		l.Error("Product deletion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// HandleExport streams the catalog as CSV or XLSX.
// @Summary Export Products
// @Description Download the full catalog as a CSV or XLSX file.
// @Tags catalog
// @Produce octet-stream
// @Param format query string false "Export format: csv or xlsx (default csv)"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /products/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	export, err := h.service.Export(c.Context(), c.Query("format"))
	if err != nil {
		l.Error("Product export failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.FileName+`"`)
	return c.Send(export.Data)
}

// HandleImport ingests a CSV or XLSX product file.
// @Summary Import Products
// @Description Upload a CSV or XLSX file and upsert products by SKU. Row errors are reported without aborting the run.
// @Tags catalog
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} models.ImportReport "Import Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /products/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file field"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Import(c.Context(), fileHeader.Filename, data)
	if err != nil {
		l.Error("Product import failed", zap.String("file", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleListCategories returns all categories.
// @Summary List Categories
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category "Categories"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /categories [get]
func (h *Handler) HandleListCategories(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	categories, err := h.service.Repo().ListCategories(c.Context())
	if err != nil {
		l.Error("Category listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(categories)
}

// HandleCreateCategory creates a category.
// @Summary Create Category
// @Tags catalog
// @Accept json
// @Produce json
// @Param category body models.Category true "Category"
// @Success 201 {object} models.Category "Created Category"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /categories [post]
func (h *Handler) HandleCreateCategory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	if err := h.service.Repo().CreateCategory(c.Context(), &category); err != nil {
		l.Error("Category creation failed", zap.String("name", category.Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
