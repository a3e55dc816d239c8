package port

import (
	"context"

	"github.com/google/uuid"

	"docgen/internal/domain"
)

// EntityRepository defines the contract for entity persistence.
type EntityRepository interface {
	Create(ctx context.Context, entity *domain.Entity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error)
	GetByCode(ctx context.Context, code string) (*domain.Entity, error)
	List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error)
	ListByCodes(ctx context.Context, codes []string) ([]domain.Entity, error)
	Update(ctx context.Context, entity *domain.Entity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientRepository defines the contract for client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetByName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ValueRepository defines the contract for per-client entity values.
type ValueRepository interface {
	// Upsert inserts the value or overwrites the text of the existing
	// (entity, client) pair. The stored row is written back into value.
	Upsert(ctx context.Context, value *domain.Value) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Value, error)
	List(ctx context.Context, clientID *uuid.UUID) ([]domain.Value, error)
	UpdateText(ctx context.Context, id uuid.UUID, text string) (*domain.Value, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ResolveCodes returns the client's values for the given entity codes.
	// Codes without a stored value are absent from the result.
	ResolveCodes(ctx context.Context, clientID uuid.UUID, codes []string) ([]domain.ResolvedValue, error)
}

// TemplateRepository defines the contract for template metadata persistence.
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	FilenameExists(ctx context.Context, filename string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]domain.Template, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HistoryRepository defines the contract for generation history persistence.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.GenerationHistory) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationHistory, error)
	List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.GenerationHistory, int, error)
	ListAll(ctx context.Context, filter domain.HistoryFilter) ([]domain.GenerationHistory, error)
}
