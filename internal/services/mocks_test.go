package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stockroom/internal/models"
)

// MockAisleRepository is a mock implementation of repositories.AisleRepository
type MockAisleRepository struct {
	mock.Mock
}

func (m *MockAisleRepository) List(ctx context.Context) ([]models.Aisle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Aisle), args.Error(1)
}

func (m *MockAisleRepository) GetByID(ctx context.Context, id uint) (*models.Aisle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aisle), args.Error(1)
}

func (m *MockAisleRepository) Create(ctx context.Context, aisle *models.Aisle) error {
	args := m.Called(ctx, aisle)
	return args.Error(0)
}

func (m *MockAisleRepository) Update(ctx context.Context, aisle *models.Aisle) error {
	args := m.Called(ctx, aisle)
	return args.Error(0)
}

func (m *MockAisleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListWithAisle(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockPublisher records published inventory events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishInventoryEvent(event models.InventoryEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func eventOfType(eventType string, entityID uint) interface{} {
	return mock.MatchedBy(func(e models.InventoryEvent) bool {
		return e.Type == eventType && e.EntityID == entityID && e.ID != ""
	})
}

var caller = &models.Identity{UserID: 1, Username: "alice"}
