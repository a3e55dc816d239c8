package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"docgen/internal/domain"
	"docgen/internal/port"
)

// CreateClientInput is the DTO for creating a client.
type CreateClientInput struct {
	Name string `json:"name" binding:"required"`
}

// UpdateClientInput is the DTO for updating a client.
type UpdateClientInput struct {
	Name *string `json:"name"`
}

// ClientService defines the client management contract.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	repo port.ClientRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(repo port.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{Name: strings.TrimSpace(input.Name)}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, offset, limit int) ([]domain.Client, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		client.Name = strings.TrimSpace(*input.Name)
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
