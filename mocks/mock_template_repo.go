package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
)

// MockTemplateRepo is a mock implementation of port.TemplateRepository.
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, tmpl *domain.Template) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *MockTemplateRepo) FilenameExists(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockTemplateRepo) List(ctx context.Context, offset, limit int) ([]domain.Template, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Template), args.Int(1), args.Error(2)
}

func (m *MockTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
