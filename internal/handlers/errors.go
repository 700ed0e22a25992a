package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/apperr"
	"stockroom/internal/logger"
)

// respondError maps a core error kind to a status code and JSON body.
// Unknown errors are logged and reported as 500 without details.
func respondError(c *fiber.Ctx, log *logger.Logger, message string, err error) error {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, apperr.ErrValidation):
		return statusJSON(c, fiber.StatusBadRequest, message, err)
	case errors.Is(err, apperr.ErrNotFound):
		return statusJSON(c, fiber.StatusNotFound, message, err)
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrDuplicateUsername):
		return statusJSON(c, fiber.StatusConflict, message, err)
	case errors.Is(err, apperr.ErrAuthentication), errors.Is(err, apperr.ErrUnauthenticated):
		return statusJSON(c, fiber.StatusUnauthorized, message, err)
	default:
		log.Error(message, "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   "internal server error",
		})
	}
}

func statusJSON(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// bodyParseError answers a request whose body could not be decoded.
func bodyParseError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
