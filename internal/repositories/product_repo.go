package repositories

import (
	"context"

	"stockroom/internal/models"
)

// ProductRepository defines the interface for product data access.
// Every method runs as one transaction against the store.
type ProductRepository interface {
	// ListWithAisle returns every product joined to its aisle, ordered by id.
	ListWithAisle(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// Create inserts the product. Fails with apperr.ErrNotFound when product.AisleID does not exist.
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites name, quantity and aisle of an existing product and reloads it.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}
