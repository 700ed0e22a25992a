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

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// ListWithAisle retrieves all products with their aisle, ordered by product id.
func (r *GORMProductRepository) ListWithAisle(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).InnerJoins("Aisle").Order("products.id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its aisle.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).InnerJoins("Aisle").First(&product, "products.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a product after share-locking its aisle.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		aisle, err := lockAisleForReference(tx, product.AisleID)
		if err != nil {
			return err
		}

		product.ID = 0
		product.Aisle = nil
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return apperr.NotFound("aisle", product.AisleID)
			}
			return fmt.Errorf("failed to create product: %w", err)
		}
		product.Aisle = aisle
		return nil
	})
}

// Update overwrites name, quantity and aisle of an existing product.
// Nothing is written unless both the product and the target aisle exist.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, "id = ?", product.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product", product.ID)
			}
			return fmt.Errorf("failed to lock product %d: %w", product.ID, err)
		}

		aisle, err := lockAisleForReference(tx, product.AisleID)
		if err != nil {
			return err
		}

		res := tx.Model(&existing).Updates(map[string]any{
			"name":     product.Name,
			"quantity": product.Quantity,
			"aisle_id": product.AisleID,
		})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
				return apperr.NotFound("aisle", product.AisleID)
			}
			return fmt.Errorf("failed to update product: %w", res.Error)
		}

		if err := tx.First(product, "id = ?", product.ID).Error; err != nil {
			return fmt.Errorf("failed to reload product %d: %w", product.ID, err)
		}
		product.Aisle = aisle
		return nil
	})
}

// Delete deletes a product by its ID. Deleting an absent id is reported as not found.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product", id)
	}
	return nil
}

// lockAisleForReference takes a shared row lock on the aisle a product is about to point at.
// It conflicts with the exclusive lock taken by aisle deletion.
func lockAisleForReference(tx *gorm.DB, aisleID uint) (*models.Aisle, error) {
	var aisle models.Aisle
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).First(&aisle, "id = ?", aisleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("aisle", aisleID)
		}
		return nil, fmt.Errorf("failed to lock aisle %d: %w", aisleID, err)
	}
	return &aisle, nil
}
