package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/logger"
	"stockroom/internal/middleware"
	"stockroom/internal/services"
)

// InventoryHandler serves the combined overview of products and aisles.
type InventoryHandler struct {
	aisles   *services.AisleService
	products *services.ProductService
	log      *logger.Logger
}

func NewInventoryHandler(aisles *services.AisleService, products *services.ProductService, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		aisles:   aisles,
		products: products,
		log:      log.With("handler", "InventoryHandler"),
	}
}

func (h *InventoryHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	router.Get("/inventory", append(middlewares, h.HandleOverview)...)
}

func (h *InventoryHandler) HandleOverview(c *fiber.Ctx) error {
	caller := middleware.Identity(c)
	products, err := h.products.ListProducts(c.UserContext(), caller)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve products", err)
	}
	aisles, err := h.aisles.ListAisles(c.UserContext(), caller)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve aisles", err)
	}
	return c.JSON(fiber.Map{
		"products": products,
		"aisles":   aisles,
	})
}
