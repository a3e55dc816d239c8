package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docgen/internal/domain"
	"docgen/internal/port"
)

type entityRepo struct {
	db *sqlx.DB
}

// NewEntityRepo creates a new PostgreSQL-backed EntityRepository.
func NewEntityRepo(db *sqlx.DB) port.EntityRepository {
	return &entityRepo{db: db}
}

func (r *entityRepo) Create(ctx context.Context, entity *domain.Entity) error {
	entity.ID = uuid.New()
	entity.CreatedAt = time.Now().UTC()

	query := `INSERT INTO entities (id, name, code, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, entity.ID, entity.Name, entity.Code, entity.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "entities_code_key") {
			return domain.ErrDuplicateEntityCode
		}
		return fmt.Errorf("entityRepo.Create: %w", err)
	}
	return nil
}

func (r *entityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	var entity domain.Entity
	err := r.db.GetContext(ctx, &entity, "SELECT * FROM entities WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("entityRepo.GetByID: %w", err)
	}
	return &entity, nil
}

func (r *entityRepo) GetByCode(ctx context.Context, code string) (*domain.Entity, error) {
	var entity domain.Entity
	err := r.db.GetContext(ctx, &entity, "SELECT * FROM entities WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("entityRepo.GetByCode: %w", err)
	}
	return &entity, nil
}

func (r *entityRepo) List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM entities"); err != nil {
		return nil, 0, fmt.Errorf("entityRepo.List count: %w", err)
	}

	var entities []domain.Entity
	err := r.db.SelectContext(ctx, &entities,
		"SELECT * FROM entities ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("entityRepo.List: %w", err)
	}
	return entities, total, nil
}

func (r *entityRepo) ListByCodes(ctx context.Context, codes []string) ([]domain.Entity, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var entities []domain.Entity
	err := r.db.SelectContext(ctx, &entities,
		"SELECT * FROM entities WHERE code = ANY($1) ORDER BY code", codes)
	if err != nil {
		return nil, fmt.Errorf("entityRepo.ListByCodes: %w", err)
	}
	return entities, nil
}

func (r *entityRepo) Update(ctx context.Context, entity *domain.Entity) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE entities SET name = $1, code = $2 WHERE id = $3",
		entity.Name, entity.Code, entity.ID)
	if err != nil {
		if isUniqueViolation(err, "entities_code_key") {
			return domain.ErrDuplicateEntityCode
		}
		return fmt.Errorf("entityRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (r *entityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entities WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("entityRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a unique violation on constraint.
func isUniqueViolation(err error, constraint string) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") && strings.Contains(msg, constraint)
}
