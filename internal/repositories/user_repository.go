package repositories

import (
	"context"

	"stockroom/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts the user. A taken username fails with apperr.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) error
	// GetByUsername returns apperr.ErrNotFound when no user has that exact username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}
