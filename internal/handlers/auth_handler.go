package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/logger"
	"stockroom/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With("handler", "AuthHandler"),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// CredentialsRequest is the body of both register and login.
type CredentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyParseError(c, err)
	}

	user, err := h.authService.RegisterUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyParseError(c, err)
	}

	token, _, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
