package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
)

// GORMAisleRepository is a GORM implementation of AisleRepository.
type GORMAisleRepository struct {
	db    *gorm.DB
	guard *IntegrityGuard
}

// NewGORMAisleRepository creates a new instance of GORMAisleRepository.
func NewGORMAisleRepository(db *gorm.DB, guard *IntegrityGuard) *GORMAisleRepository {
	return &GORMAisleRepository{
		db:    db,
		guard: guard,
	}
}

// List retrieves all aisles ordered by id.
func (r *GORMAisleRepository) List(ctx context.Context) ([]models.Aisle, error) {
	aisles := []models.Aisle{}
	if err := r.db.WithContext(ctx).Order("id").Find(&aisles).Error; err != nil {
		return nil, fmt.Errorf("failed to list aisles: %w", err)
	}
	return aisles, nil
}

// GetByID retrieves a single aisle.
func (r *GORMAisleRepository) GetByID(ctx context.Context, id uint) (*models.Aisle, error) {
	var aisle models.Aisle
	if err := r.db.WithContext(ctx).First(&aisle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("aisle", id)
		}
		return nil, fmt.Errorf("failed to get aisle by ID %d: %w", id, err)
	}
	return &aisle, nil
}

// Create inserts a new aisle and fills in its id.
func (r *GORMAisleRepository) Create(ctx context.Context, aisle *models.Aisle) error {
	aisle.ID = 0
	if err := r.db.WithContext(ctx).Create(aisle).Error; err != nil {
		return fmt.Errorf("failed to create aisle: %w", err)
	}
	return nil
}

// Update overwrites name and aisle number, then reloads the row into aisle.
func (r *GORMAisleRepository) Update(ctx context.Context, aisle *models.Aisle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Aisle{}).Where("id = ?", aisle.ID).Updates(map[string]any{
			"name":         aisle.Name,
			"aisle_number": aisle.AisleNumber,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update aisle: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("aisle", aisle.ID)
		}
		if err := tx.First(aisle, "id = ?", aisle.ID).Error; err != nil {
			return fmt.Errorf("failed to reload aisle %d: %w", aisle.ID, err)
		}
		return nil
	})
}

// Delete removes an aisle. The row is locked first so no product can be attached to it
// between the integrity check and the delete.
func (r *GORMAisleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var aisle models.Aisle
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&aisle, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("aisle", id)
			}
			return fmt.Errorf("failed to lock aisle %d: %w", id, err)
		}

		if err := r.guard.CheckAisleDeletable(ctx, tx, id); err != nil {
			return err
		}

		res := tx.Delete(&models.Aisle{}, "id = ?", id)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
				return fmt.Errorf("aisle %d: %w", id, ErrAisleHasProducts)
			}
			return fmt.Errorf("failed to delete aisle: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("aisle", id)
		}
		return nil
	})
}
