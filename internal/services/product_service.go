package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/apperr"
	"stockroom/internal/logger"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
	log      *logger.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log *logger.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
		log:      log.With("service", "ProductService"),
	}
}

// ListProducts retrieves all products, each joined to its aisle.
func (s *ProductService) ListProducts(ctx context.Context, caller *models.Identity) ([]models.Product, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	return s.repo.ListWithAisle(ctx)
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, caller *models.Identity, id uint) (*models.Product, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// CreateProduct parses and validates the raw input, then stores the product in its aisle.
func (s *ProductService) CreateProduct(ctx context.Context, caller *models.Identity, input models.ProductInput) (*models.Product, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	product, err := s.productFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("product created", "product_id", product.ID, "aisle_id", product.AisleID, "by", caller.Username)
	publishEvent(s.log, s.events, models.EventProductCreated, product.ID, actorOf(caller))
	return product, nil
}

// UpdateProduct replaces name, quantity and aisle of a product and returns the refreshed product.
func (s *ProductService) UpdateProduct(ctx context.Context, caller *models.Identity, id uint, input models.ProductInput) (*models.Product, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	product, err := s.productFromInput(input)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("product updated", "product_id", id, "aisle_id", product.AisleID, "by", caller.Username)
	publishEvent(s.log, s.events, models.EventProductUpdated, id, actorOf(caller))
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, caller *models.Identity, id uint) error {
	if err := requireIdentity(caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id, "by", caller.Username)
	publishEvent(s.log, s.events, models.EventProductDeleted, id, actorOf(caller))
	return nil
}

func (s *ProductService) productFromInput(input models.ProductInput) (*models.Product, error) {
	fields := map[string]string{}

	// Parse errors are recorded first so they win over the generic tag messages for the same field.
	quantity, err := ParseQuantity(string(input.Quantity))
	if err != nil {
		mergeFields(fields, err)
	}
	aisleID, err := ParseID("aisle_id", string(input.AisleID))
	if err != nil {
		mergeFields(fields, err)
	}

	product := &models.Product{
		Name:     strings.TrimSpace(input.Name),
		Quantity: quantity,
		AisleID:  aisleID,
	}
	if err := validateStruct(s.validate, product); err != nil {
		var verr *apperr.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		mergeFields(fields, verr)
	}

	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}
	return product, nil
}

// mergeFields copies the per-field messages of a validation error into fields.
// Only the first message for a field is kept.
func mergeFields(fields map[string]string, err error) {
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for name, msg := range verr.Fields {
		if _, exists := fields[name]; !exists {
			fields[name] = msg
		}
	}
}
