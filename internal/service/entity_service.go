package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"docgen/internal/docx"
	"docgen/internal/domain"
	"docgen/internal/port"
)

// CreateEntityInput is the DTO for creating an entity.
type CreateEntityInput struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// UpdateEntityInput is the DTO for updating an entity.
type UpdateEntityInput struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// EntityService defines the entity management contract.
type EntityService interface {
	Create(ctx context.Context, input CreateEntityInput) (*domain.Entity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error)
	List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEntityInput) (*domain.Entity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entityService struct {
	repo port.EntityRepository
}

// NewEntityService creates a new EntityService implementation.
func NewEntityService(repo port.EntityRepository) EntityService {
	return &entityService{repo: repo}
}

// NormalizeCode trims the code and wraps a bare code in braces, so "FIO"
// and "{FIO}" are the same entity code. The result must be a valid token.
func NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "{") && !strings.HasSuffix(code, "}") {
		code = "{" + code + "}"
	}
	if !docx.IsToken(code) {
		return "", domain.ErrInvalidEntityCode
	}
	return code, nil
}

func (s *entityService) Create(ctx context.Context, input CreateEntityInput) (*domain.Entity, error) {
	code, err := NormalizeCode(input.Code)
	if err != nil {
		return nil, err
	}
	entity := &domain.Entity{
		Name: strings.TrimSpace(input.Name),
		Code: code,
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *entityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *entityService) List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *entityService) Update(ctx context.Context, id uuid.UUID, input UpdateEntityInput) (*domain.Entity, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		entity.Name = strings.TrimSpace(*input.Name)
	}
	if input.Code != nil {
		code, err := NormalizeCode(*input.Code)
		if err != nil {
			return nil, err
		}
		entity.Code = code
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *entityService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
