package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/apperr"
	"stockroom/internal/logger"
	"stockroom/internal/models"
)

// IdentityKey is the fiber.Ctx locals key holding the caller's *models.Identity.
const IdentityKey = "identity"

// Authenticator resolves a bearer token to the identity of an existing user.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*models.Identity, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(auth Authenticator, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			if !errors.Is(err, apperr.ErrUnauthenticated) {
				log.Error("token authentication failed", "path", c.Path(), "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not authenticate request",
				})
			}
			log.Debug("JWT validation failed", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// Identity returns the caller stored by AuthRequired, or nil.
func Identity(c *fiber.Ctx) *models.Identity {
	identity, _ := c.Locals(IdentityKey).(*models.Identity)
	return identity
}
