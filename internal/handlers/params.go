package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/services"
)

// idParam parses the ":id" route parameter.
func idParam(c *fiber.Ctx) (uint, error) {
	return services.ParseID("id", c.Params("id"))
}
