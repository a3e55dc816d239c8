package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docgen/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendGeneratedDocuments(ctx context.Context, toEmail, templateName string, links []port.DocumentLink) error {
	args := m.Called(ctx, toEmail, templateName, links)
	return args.Error(0)
}
