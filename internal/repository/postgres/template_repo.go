package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docgen/internal/domain"
	"docgen/internal/port"
)

type templateRepo struct {
	db *sqlx.DB
}

// NewTemplateRepo creates a new PostgreSQL-backed TemplateRepository.
func NewTemplateRepo(db *sqlx.DB) port.TemplateRepository {
	return &templateRepo{db: db}
}

// Create stores template metadata. The caller assigns ID and StorageKey since
// the blob is keyed by the template ID.
func (r *templateRepo) Create(ctx context.Context, tmpl *domain.Template) error {
	query := `INSERT INTO templates (id, name, filename, storage_key, file_size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Name, tmpl.Filename, tmpl.StorageKey, tmpl.FileSize, tmpl.UploadedAt)
	if err != nil {
		return fmt.Errorf("templateRepo.Create: %w", err)
	}
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	var tmpl domain.Template
	err := r.db.GetContext(ctx, &tmpl, "SELECT * FROM templates WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}
	return &tmpl, nil
}

func (r *templateRepo) FilenameExists(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM templates WHERE filename = $1)", filename)
	if err != nil {
		return false, fmt.Errorf("templateRepo.FilenameExists: %w", err)
	}
	return exists, nil
}

func (r *templateRepo) List(ctx context.Context, offset, limit int) ([]domain.Template, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM templates"); err != nil {
		return nil, 0, fmt.Errorf("templateRepo.List count: %w", err)
	}

	var templates []domain.Template
	err := r.db.SelectContext(ctx, &templates,
		"SELECT * FROM templates ORDER BY uploaded_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("templateRepo.List: %w", err)
	}
	return templates, total, nil
}

func (r *templateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM templates WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("templateRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
