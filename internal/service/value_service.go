package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"docgen/internal/domain"
	"docgen/internal/port"
)

// SetValueInput is the DTO for setting a client's value for an entity.
type SetValueInput struct {
	EntityID  uuid.UUID `json:"entity_id" binding:"required"`
	ClientID  uuid.UUID `json:"client_id" binding:"required"`
	ValueText string    `json:"value_text"`
}

// UpdateValueInput is the DTO for replacing the text of a stored value.
type UpdateValueInput struct {
	ValueText string `json:"value_text"`
}

// ImportResult summarizes a spreadsheet value import.
type ImportResult struct {
	Rows           int      `json:"rows"`
	ClientsCreated int      `json:"clients_created"`
	ValuesSet      int      `json:"values_set"`
	SkippedColumns []string `json:"skipped_columns"`
}

// ValueService defines the per-client value contract.
type ValueService interface {
	Set(ctx context.Context, input SetValueInput) (*domain.Value, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Value, error)
	List(ctx context.Context, clientID *uuid.UUID) ([]domain.Value, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateValueInput) (*domain.Value, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResolveForClient(ctx context.Context, clientID uuid.UUID, codes []string) (map[string]string, error)
	ImportXLSX(ctx context.Context, r io.Reader) (*ImportResult, error)
}

type valueService struct {
	valueRepo  port.ValueRepository
	entityRepo port.EntityRepository
	clientRepo port.ClientRepository
}

// NewValueService creates a new ValueService implementation.
func NewValueService(
	valueRepo port.ValueRepository,
	entityRepo port.EntityRepository,
	clientRepo port.ClientRepository,
) ValueService {
	return &valueService{
		valueRepo:  valueRepo,
		entityRepo: entityRepo,
		clientRepo: clientRepo,
	}
}

func (s *valueService) Set(ctx context.Context, input SetValueInput) (*domain.Value, error) {
	if _, err := s.entityRepo.GetByID(ctx, input.EntityID); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	value := &domain.Value{
		EntityID:  input.EntityID,
		ClientID:  input.ClientID,
		ValueText: input.ValueText,
	}
	if err := s.valueRepo.Upsert(ctx, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (s *valueService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Value, error) {
	return s.valueRepo.GetByID(ctx, id)
}

func (s *valueService) List(ctx context.Context, clientID *uuid.UUID) ([]domain.Value, error) {
	return s.valueRepo.List(ctx, clientID)
}

func (s *valueService) Update(ctx context.Context, id uuid.UUID, input UpdateValueInput) (*domain.Value, error) {
	return s.valueRepo.UpdateText(ctx, id, input.ValueText)
}

func (s *valueService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.valueRepo.Delete(ctx, id)
}

// ResolveForClient maps each code the client has a value for to that value.
// Codes without a value are absent from the map.
func (s *valueService) ResolveForClient(ctx context.Context, clientID uuid.UUID, codes []string) (map[string]string, error) {
	mapping := make(map[string]string, len(codes))
	if len(codes) == 0 {
		return mapping, nil
	}
	resolved, err := s.valueRepo.ResolveCodes(ctx, clientID, codes)
	if err != nil {
		return nil, err
	}
	for _, rv := range resolved {
		mapping[rv.Code] = rv.ValueText
	}
	return mapping, nil
}

// ImportXLSX loads values from the first sheet of a workbook. The header row is
// "client" followed by one entity code per column; each further row is a client
// name and that client's values. Missing clients are created, empty cells are
// ignored, and columns that name no known entity are skipped.
func (s *valueService) ImportXLSX(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if len(rows) == 0 || !strings.EqualFold(strings.TrimSpace(cellVal(rows[0], 0)), "client") {
		return nil, fmt.Errorf("%w: first header cell must be \"client\"", domain.ErrInvalidImport)
	}

	result := &ImportResult{SkippedColumns: []string{}}
	columns, err := s.importColumns(ctx, rows[0], result)
	if err != nil {
		return nil, err
	}

	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" {
			continue
		}
		result.Rows++

		client, created, err := s.findOrCreateClient(ctx, name)
		if err != nil {
			return nil, err
		}
		if created {
			result.ClientsCreated++
		}

		for col, entity := range columns {
			text := strings.TrimSpace(cellVal(row, col))
			if text == "" {
				continue
			}
			value := &domain.Value{EntityID: entity.ID, ClientID: client.ID, ValueText: text}
			if err := s.valueRepo.Upsert(ctx, value); err != nil {
				return nil, fmt.Errorf("setting %s for client %q: %w", entity.Code, name, err)
			}
			result.ValuesSet++
		}
	}

	log.Printf("valueService.ImportXLSX: %d rows, %d clients created, %d values set, %d columns skipped",
		result.Rows, result.ClientsCreated, result.ValuesSet, len(result.SkippedColumns))
	return result, nil
}

// importColumns maps header column indexes to the entities they name.
func (s *valueService) importColumns(ctx context.Context, header []string, result *ImportResult) (map[int]domain.Entity, error) {
	codeByCol := make(map[int]string)
	var codes []string
	for col := 1; col < len(header); col++ {
		raw := strings.TrimSpace(header[col])
		if raw == "" {
			continue
		}
		code, err := NormalizeCode(raw)
		if err != nil {
			result.SkippedColumns = append(result.SkippedColumns, raw)
			continue
		}
		codeByCol[col] = code
		codes = append(codes, code)
	}

	entities, err := s.entityRepo.ListByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]domain.Entity, len(entities))
	for _, e := range entities {
		byCode[e.Code] = e
	}

	columns := make(map[int]domain.Entity, len(codeByCol))
	for col := 1; col < len(header); col++ {
		code, ok := codeByCol[col]
		if !ok {
			continue
		}
		entity, known := byCode[code]
		if !known {
			result.SkippedColumns = append(result.SkippedColumns, code)
			continue
		}
		columns[col] = entity
	}
	return columns, nil
}

func (s *valueService) findOrCreateClient(ctx context.Context, name string) (*domain.Client, bool, error) {
	client, err := s.clientRepo.GetByName(ctx, name)
	if err == nil {
		return client, false, nil
	}
	if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, false, err
	}
	client = &domain.Client{Name: name}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, false, err
	}
	return client, true, nil
}

// cellVal safely returns the cell value at index i, or "" if out of bounds.
func cellVal(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
