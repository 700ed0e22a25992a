package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/logger"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/services"
)

// AisleHandler handles HTTP requests for aisles.
type AisleHandler struct {
	service *services.AisleService
	log     *logger.Logger
}

// NewAisleHandler creates a new AisleHandler.
func NewAisleHandler(service *services.AisleService, log *logger.Logger) *AisleHandler {
	return &AisleHandler{
		service: service,
		log:     log.With("handler", "AisleHandler"),
	}
}

// RegisterRoutes registers the aisle routes under their own prefix, behind middlewares.
func (h *AisleHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	aisleRoutes := router.Group("/aisles", middlewares...)
	aisleRoutes.Get("/", h.HandleListAisles)
	aisleRoutes.Post("/", h.HandleCreateAisle)
	aisleRoutes.Get("/:id", h.HandleGetAisle)
	aisleRoutes.Put("/:id", h.HandleUpdateAisle)
	aisleRoutes.Delete("/:id", h.HandleDeleteAisle)
}

func (h *AisleHandler) HandleListAisles(c *fiber.Ctx) error {
	aisles, err := h.service.ListAisles(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve aisles", err)
	}
	return c.JSON(aisles)
}

func (h *AisleHandler) HandleGetAisle(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, h.log, "Invalid aisle ID", err)
	}
	aisle, err := h.service.GetAisle(c.UserContext(), middleware.Identity(c), id)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve aisle", err)
	}
	return c.JSON(aisle)
}

func (h *AisleHandler) HandleCreateAisle(c *fiber.Ctx) error {
	var input models.AisleInput
	if err := c.BodyParser(&input); err != nil {
		return bodyParseError(c, err)
	}
	aisle, err := h.service.CreateAisle(c.UserContext(), middleware.Identity(c), input)
	if err != nil {
		return respondError(c, h.log, "Could not create aisle", err)
	}
	return c.Status(fiber.StatusCreated).JSON(aisle)
}

func (h *AisleHandler) HandleUpdateAisle(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, h.log, "Invalid aisle ID", err)
	}
	var input models.AisleInput
	if err := c.BodyParser(&input); err != nil {
		return bodyParseError(c, err)
	}
	aisle, err := h.service.UpdateAisle(c.UserContext(), middleware.Identity(c), id, input)
	if err != nil {
		return respondError(c, h.log, "Could not update aisle", err)
	}
	return c.JSON(aisle)
}

// HandleDeleteAisle answers 409 when the aisle still holds products.
func (h *AisleHandler) HandleDeleteAisle(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, h.log, "Invalid aisle ID", err)
	}
	if err := h.service.DeleteAisle(c.UserContext(), middleware.Identity(c), id); err != nil {
		return respondError(c, h.log, "Could not delete aisle", err)
	}
	return c.JSON(fiber.Map{
		"message": "Aisle deleted successfully",
	})
}
