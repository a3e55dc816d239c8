package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
)

// MockHistoryRepo is a mock implementation of port.HistoryRepository.
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Create(ctx context.Context, entry *domain.GenerationHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationHistory), args.Error(1)
}

func (m *MockHistoryRepo) List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.GenerationHistory, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GenerationHistory), args.Int(1), args.Error(2)
}

func (m *MockHistoryRepo) ListAll(ctx context.Context, filter domain.HistoryFilter) ([]domain.GenerationHistory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GenerationHistory), args.Error(1)
}
