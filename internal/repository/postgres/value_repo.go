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

type valueRepo struct {
	db *sqlx.DB
}

// NewValueRepo creates a new PostgreSQL-backed ValueRepository.
func NewValueRepo(db *sqlx.DB) port.ValueRepository {
	return &valueRepo{db: db}
}

func (r *valueRepo) Upsert(ctx context.Context, value *domain.Value) error {
	now := time.Now().UTC()
	query := `INSERT INTO entity_values (id, entity_id, client_id, value_text, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity_id, client_id)
		DO UPDATE SET value_text = EXCLUDED.value_text, updated_at = EXCLUDED.updated_at
		RETURNING *`

	var stored domain.Value
	err := r.db.GetContext(ctx, &stored, query,
		uuid.New(), value.EntityID, value.ClientID, value.ValueText, now)
	if err != nil {
		if isForeignKeyViolation(err, "entity_id") {
			return domain.ErrEntityNotFound
		}
		if isForeignKeyViolation(err, "client_id") {
			return domain.ErrClientNotFound
		}
		return fmt.Errorf("valueRepo.Upsert: %w", err)
	}
	*value = stored
	return nil
}

func (r *valueRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Value, error) {
	var value domain.Value
	err := r.db.GetContext(ctx, &value, "SELECT * FROM entity_values WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrValueNotFound
		}
		return nil, fmt.Errorf("valueRepo.GetByID: %w", err)
	}
	return &value, nil
}

func (r *valueRepo) List(ctx context.Context, clientID *uuid.UUID) ([]domain.Value, error) {
	var values []domain.Value
	var err error
	if clientID != nil {
		err = r.db.SelectContext(ctx, &values,
			"SELECT * FROM entity_values WHERE client_id = $1 ORDER BY updated_at DESC", *clientID)
	} else {
		err = r.db.SelectContext(ctx, &values,
			"SELECT * FROM entity_values ORDER BY updated_at DESC")
	}
	if err != nil {
		return nil, fmt.Errorf("valueRepo.List: %w", err)
	}
	return values, nil
}

func (r *valueRepo) UpdateText(ctx context.Context, id uuid.UUID, text string) (*domain.Value, error) {
	var value domain.Value
	err := r.db.GetContext(ctx, &value,
		"UPDATE entity_values SET value_text = $1, updated_at = $2 WHERE id = $3 RETURNING *",
		text, time.Now().UTC(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrValueNotFound
		}
		return nil, fmt.Errorf("valueRepo.UpdateText: %w", err)
	}
	return &value, nil
}

func (r *valueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entity_values WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("valueRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrValueNotFound
	}
	return nil
}

func (r *valueRepo) ResolveCodes(ctx context.Context, clientID uuid.UUID, codes []string) ([]domain.ResolvedValue, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var resolved []domain.ResolvedValue
	err := r.db.SelectContext(ctx, &resolved,
		`SELECT e.code, v.value_text FROM entity_values v
		 INNER JOIN entities e ON e.id = v.entity_id
		 WHERE v.client_id = $1 AND e.code = ANY($2)`,
		clientID, codes)
	if err != nil {
		return nil, fmt.Errorf("valueRepo.ResolveCodes: %w", err)
	}
	return resolved, nil
}

func isForeignKeyViolation(err error, column string) bool {
	msg := err.Error()
	return (strings.Contains(msg, "foreign key") || strings.Contains(msg, "SQLSTATE 23503")) &&
		strings.Contains(msg, column)
}
