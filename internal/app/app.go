package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handlers"
	"stockroom/internal/logger"
	"stockroom/internal/middleware"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
)

// Deps are the process-wide resources the HTTP application is built on.
type Deps struct {
	Config config.Config
	DB     *gorm.DB
	Log    *logger.Logger
	Events services.EventPublisher // nil disables event publishing
}

// New wires repositories, services and handlers into a Fiber app.
// The schema must already be ensured on deps.DB.
func New(deps Deps) (*fiber.App, *services.AuthService, error) {
	guard := repositories.NewIntegrityGuard()
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	aisleRepo := repositories.NewGORMAisleRepository(deps.DB, guard)
	productRepo := repositories.NewGORMProductRepository(deps.DB)

	authService, err := services.NewAuthService(userRepo, deps.Config.Auth, deps.Events, deps.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	aisleService := services.NewAisleService(aisleRepo, deps.Events, deps.Log)
	productService := services.NewProductService(productRepo, deps.Events, deps.Log)

	authHandler := handlers.NewAuthHandler(authService, deps.Log)
	aisleHandler := handlers.NewAisleHandler(aisleService, deps.Log)
	productHandler := handlers.NewProductHandler(productService, deps.Log)
	inventoryHandler := handlers.NewInventoryHandler(aisleService, productService, deps.Log)

	app := fiber.New(fiber.Config{
		AppName:               "stockroom",
		DisableStartupMessage: true,
	})
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, deps.DB); err != nil {
			deps.Log.Warn("health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "unreachable",
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
		})
	})

	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Each protected group mounts the middleware on its own prefix only.
	authRequired := middleware.AuthRequired(authService, deps.Log)
	aisleHandler.RegisterRoutes(apiV1, authRequired)
	productHandler.RegisterRoutes(apiV1, authRequired)
	inventoryHandler.RegisterRoutes(apiV1, authRequired)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Route not found",
			"path":    c.Path(),
		})
	})

	return app, authService, nil
}
