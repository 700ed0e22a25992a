package repositories

import (
	"context"

	"stockroom/internal/models"
)

// AisleRepository defines the interface for aisle data access.
type AisleRepository interface {
	List(ctx context.Context) ([]models.Aisle, error)
	GetByID(ctx context.Context, id uint) (*models.Aisle, error)
	Create(ctx context.Context, aisle *models.Aisle) error
	Update(ctx context.Context, aisle *models.Aisle) error
	// Delete removes the aisle unless the integrity guard refuses it.
	Delete(ctx context.Context, id uint) error
}
