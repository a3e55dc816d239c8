package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
	"docgen/internal/service"
)

// MockValueService is a mock implementation of service.ValueService.
type MockValueService struct {
	mock.Mock
}

func (m *MockValueService) Set(ctx context.Context, input service.SetValueInput) (*domain.Value, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Value), args.Error(1)
}

func (m *MockValueService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Value, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Value), args.Error(1)
}

func (m *MockValueService) List(ctx context.Context, clientID *uuid.UUID) ([]domain.Value, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Value), args.Error(1)
}

func (m *MockValueService) Update(ctx context.Context, id uuid.UUID, input service.UpdateValueInput) (*domain.Value, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Value), args.Error(1)
}

func (m *MockValueService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockValueService) ResolveForClient(ctx context.Context, clientID uuid.UUID, codes []string) (map[string]string, error) {
	args := m.Called(ctx, clientID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockValueService) ImportXLSX(ctx context.Context, r io.Reader) (*service.ImportResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}
