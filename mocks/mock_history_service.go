package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
	"docgen/internal/service"
)

// MockHistoryService is a mock implementation of service.HistoryService.
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.GenerationHistory, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GenerationHistory), args.Int(1), args.Error(2)
}

func (m *MockHistoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationHistory), args.Error(1)
}

func (m *MockHistoryService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockHistoryService) Export(ctx context.Context, filter domain.HistoryFilter, format domain.ExportFormat) (*service.HistoryExport, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HistoryExport), args.Error(1)
}
