package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/logger"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With("handler", "ProductHandler"),
	}
}

// RegisterRoutes registers the product routes under their own prefix, behind middlewares.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	productRoutes := router.Group("/products", middlewares...)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns every product with its aisle.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, h.log, "Invalid product ID", err)
	}
	product, err := h.service.GetProduct(c.UserContext(), middleware.Identity(c), id)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return bodyParseError(c, err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), middleware.Identity(c), input)
	if err != nil {
		return respondError(c, h.log, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, h.log, "Invalid product ID", err)
	}
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return bodyParseError(c, err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), middleware.Identity(c), id, input)
	if err != nil {
		return respondError(c, h.log, "Could not update product", err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, h.log, "Invalid product ID", err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), middleware.Identity(c), id); err != nil {
		return respondError(c, h.log, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
