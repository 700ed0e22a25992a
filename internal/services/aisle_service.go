package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/logger"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// AisleService handles business logic related to aisles.
type AisleService struct {
	repo     repositories.AisleRepository
	events   EventPublisher
	validate *validator.Validate
	log      *logger.Logger
}

// NewAisleService creates a new AisleService. events may be nil.
func NewAisleService(repo repositories.AisleRepository, events EventPublisher, log *logger.Logger) *AisleService {
	return &AisleService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
		log:      log.With("service", "AisleService"),
	}
}

// ListAisles retrieves all aisles ordered by id.
func (s *AisleService) ListAisles(ctx context.Context, caller *models.Identity) ([]models.Aisle, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// GetAisle retrieves a single aisle by its ID.
func (s *AisleService) GetAisle(ctx context.Context, caller *models.Identity, id uint) (*models.Aisle, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// CreateAisle validates the input and stores a new aisle.
func (s *AisleService) CreateAisle(ctx context.Context, caller *models.Identity, input models.AisleInput) (*models.Aisle, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	aisle, err := s.aisleFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, aisle); err != nil {
		return nil, err
	}
	s.log.Info("aisle created", "aisle_id", aisle.ID, "by", caller.Username)
	publishEvent(s.log, s.events, models.EventAisleCreated, aisle.ID, actorOf(caller))
	return aisle, nil
}

// UpdateAisle replaces name and aisle number and returns the refreshed aisle.
func (s *AisleService) UpdateAisle(ctx context.Context, caller *models.Identity, id uint, input models.AisleInput) (*models.Aisle, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	aisle, err := s.aisleFromInput(input)
	if err != nil {
		return nil, err
	}
	aisle.ID = id
	if err := s.repo.Update(ctx, aisle); err != nil {
		return nil, err
	}
	s.log.Info("aisle updated", "aisle_id", id, "by", caller.Username)
	publishEvent(s.log, s.events, models.EventAisleUpdated, id, actorOf(caller))
	return aisle, nil
}

// DeleteAisle deletes an aisle. Aisles that still hold products are refused with apperr.ErrConflict.
func (s *AisleService) DeleteAisle(ctx context.Context, caller *models.Identity, id uint) error {
	if err := requireIdentity(caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("aisle deleted", "aisle_id", id, "by", caller.Username)
	publishEvent(s.log, s.events, models.EventAisleDeleted, id, actorOf(caller))
	return nil
}

func (s *AisleService) aisleFromInput(input models.AisleInput) (*models.Aisle, error) {
	aisle := &models.Aisle{
		Name:        strings.TrimSpace(input.Name),
		AisleNumber: strings.TrimSpace(input.AisleNumber),
	}
	if err := validateStruct(s.validate, aisle); err != nil {
		return nil, err
	}
	return aisle, nil
}
