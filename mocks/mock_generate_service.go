package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docgen/internal/service"
)

// MockGenerateService is a mock implementation of service.GenerateService.
type MockGenerateService struct {
	mock.Mock
}

func (m *MockGenerateService) Generate(ctx context.Context, input service.GenerateInput) (*service.GenerateResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}
