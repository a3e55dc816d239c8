package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docgen/internal/domain"
	"docgen/internal/port"
)

type historyRepo struct {
	db *sqlx.DB
}

// NewHistoryRepo creates a new PostgreSQL-backed HistoryRepository.
func NewHistoryRepo(db *sqlx.DB) port.HistoryRepository {
	return &historyRepo{db: db}
}

// Create stores a history entry. The caller assigns ID and GeneratedAt since the
// output blob key is derived from the ID.
func (r *historyRepo) Create(ctx context.Context, entry *domain.GenerationHistory) error {
	query := `INSERT INTO generation_history
		(id, user_id, client_id, template_id, output_filename, storage_key, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.ClientID, entry.TemplateID,
		entry.OutputFilename, entry.StorageKey, entry.GeneratedAt)
	if err != nil {
		return fmt.Errorf("historyRepo.Create: %w", err)
	}
	return nil
}

func (r *historyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationHistory, error) {
	var entry domain.GenerationHistory
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM generation_history WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, fmt.Errorf("historyRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *historyRepo) List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.GenerationHistory, int, error) {
	where, args := historyWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM generation_history"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("historyRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM generation_history%s ORDER BY generated_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	var entries []domain.GenerationHistory
	if err := r.db.SelectContext(ctx, &entries, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("historyRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *historyRepo) ListAll(ctx context.Context, filter domain.HistoryFilter) ([]domain.GenerationHistory, error) {
	where, args := historyWhere(filter)

	var entries []domain.GenerationHistory
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM generation_history"+where+" ORDER BY generated_at DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("historyRepo.ListAll: %w", err)
	}
	return entries, nil
}

func historyWhere(filter domain.HistoryFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conds = append(conds, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if filter.TemplateID != nil {
		args = append(args, *filter.TemplateID)
		conds = append(conds, fmt.Sprintf("template_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
