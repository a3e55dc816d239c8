package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
)

// MockValueRepo is a mock implementation of port.ValueRepository.
type MockValueRepo struct {
	mock.Mock
}

func (m *MockValueRepo) Upsert(ctx context.Context, value *domain.Value) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockValueRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Value, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Value), args.Error(1)
}

func (m *MockValueRepo) List(ctx context.Context, clientID *uuid.UUID) ([]domain.Value, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Value), args.Error(1)
}

func (m *MockValueRepo) UpdateText(ctx context.Context, id uuid.UUID, text string) (*domain.Value, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Value), args.Error(1)
}

func (m *MockValueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockValueRepo) ResolveCodes(ctx context.Context, clientID uuid.UUID, codes []string) ([]domain.ResolvedValue, error) {
	args := m.Called(ctx, clientID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResolvedValue), args.Error(1)
}
