package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user. Uniqueness is left to the username index so two concurrent
// registrations cannot both succeed.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = 0
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("username '%s': %w", user.Username, apperr.ErrDuplicateUsername)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s %w", username, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}
