package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
)

// MockEntityRepo is a mock implementation of port.EntityRepository.
type MockEntityRepo struct {
	mock.Mock
}

func (m *MockEntityRepo) Create(ctx context.Context, entity *domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepo) GetByCode(ctx context.Context, code string) (*domain.Entity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepo) List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Entity), args.Int(1), args.Error(2)
}

func (m *MockEntityRepo) ListByCodes(ctx context.Context, codes []string) ([]domain.Entity, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockEntityRepo) Update(ctx context.Context, entity *domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
