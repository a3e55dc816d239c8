package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
	"docgen/internal/service"
)

// MockEntityService is a mock implementation of service.EntityService.
type MockEntityService struct {
	mock.Mock
}

func (m *MockEntityService) Create(ctx context.Context, input service.CreateEntityInput) (*domain.Entity, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Entity), args.Int(1), args.Error(2)
}

func (m *MockEntityService) Update(ctx context.Context, id uuid.UUID, input service.UpdateEntityInput) (*domain.Entity, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
