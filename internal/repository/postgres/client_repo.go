package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docgen/internal/domain"
	"docgen/internal/port"
)

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = uuid.New()
	client.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (id, name, created_at) VALUES ($1, $2, $3)",
		client.ID, client.Name, client.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "clients_name_key") {
			return domain.ErrDuplicateClientName
		}
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client, "SELECT * FROM clients WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) GetByName(ctx context.Context, name string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client, "SELECT * FROM clients WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByName: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) List(ctx context.Context, offset, limit int) ([]domain.Client, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM clients"); err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List count: %w", err)
	}

	var clients []domain.Client
	err := r.db.SelectContext(ctx, &clients,
		"SELECT * FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, total, nil
}

func (r *clientRepo) Update(ctx context.Context, client *domain.Client) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clients SET name = $1 WHERE id = $2", client.Name, client.ID)
	if err != nil {
		if isUniqueViolation(err, "clients_name_key") {
			return domain.ErrDuplicateClientName
		}
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("clientRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
