package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
)

// ErrAisleHasProducts is returned when deleting an aisle that products still reference.
var ErrAisleHasProducts = apperr.Conflict("aisle has dependent products")

// IntegrityGuard holds the aisle/product referential rule. It is evaluated inside the
// caller's transaction so the check and the delete that follows are one unit.
type IntegrityGuard struct{}

func NewIntegrityGuard() *IntegrityGuard {
	return &IntegrityGuard{}
}

// DependentProducts counts the products referencing the aisle.
func (g *IntegrityGuard) DependentProducts(ctx context.Context, tx *gorm.DB, aisleID uint) (int64, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Product{}).Where("aisle_id = ?", aisleID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products in aisle %d: %w", aisleID, err)
	}
	return count, nil
}

// CheckAisleDeletable fails with ErrAisleHasProducts when the aisle is still referenced.
func (g *IntegrityGuard) CheckAisleDeletable(ctx context.Context, tx *gorm.DB, aisleID uint) error {
	count, err := g.DependentProducts(ctx, tx, aisleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("aisle %d has %d product(s): %w", aisleID, count, ErrAisleHasProducts)
	}
	return nil
}
