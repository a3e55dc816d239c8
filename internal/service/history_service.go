package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docgen/internal/config"
	"docgen/internal/csvexport"
	"docgen/internal/domain"
	"docgen/internal/port"
)

// HistoryExport is a rendered history export ready to be served.
type HistoryExport struct {
	Filename    string
	ContentType string
	Content     []byte
}

// HistoryService defines the generation history contract.
type HistoryService interface {
	List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.GenerationHistory, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationHistory, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Export(ctx context.Context, filter domain.HistoryFilter, format domain.ExportFormat) (*HistoryExport, error)
}

type historyService struct {
	historyRepo  port.HistoryRepository
	clientRepo   port.ClientRepository
	templateRepo port.TemplateRepository
	storage      port.ObjectStorage
	cfg          *config.S3Config
}

// NewHistoryService creates a new HistoryService implementation.
func NewHistoryService(
	historyRepo port.HistoryRepository,
	clientRepo port.ClientRepository,
	templateRepo port.TemplateRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) HistoryService {
	return &historyService{
		historyRepo:  historyRepo,
		clientRepo:   clientRepo,
		templateRepo: templateRepo,
		storage:      storage,
		cfg:          cfg,
	}
}

func (s *historyService) List(ctx context.Context, filter domain.HistoryFilter, offset, limit int) ([]domain.GenerationHistory, int, error) {
	return s.historyRepo.List(ctx, filter, offset, limit)
}

func (s *historyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationHistory, error) {
	return s.historyRepo.GetByID(ctx, id)
}

func (s *historyService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	entry, err := s.historyRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, entry.StorageKey, s.cfg.PresignExpiry)
}

func (s *historyService) Export(ctx context.Context, filter domain.HistoryFilter, format domain.ExportFormat) (*HistoryExport, error) {
	entries, err := s.historyRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.exportRows(ctx, entries)
	if err != nil {
		return nil, err
	}

	if format != domain.ExportXLSX {
		format = domain.ExportCSV
	}

	var buf bytes.Buffer
	out := &HistoryExport{Filename: csvexport.BuildFilename("generation_history", format, time.Now())}
	switch format {
	case domain.ExportXLSX:
		if err := csvexport.WriteXLSX(&buf, rows); err != nil {
			return nil, fmt.Errorf("writing xlsx export: %w", err)
		}
		out.ContentType = domain.ContentTypeXLSX
	default:
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, fmt.Errorf("writing csv header: %w", err)
		}
		if err := w.WriteRows(rows); err != nil {
			return nil, fmt.Errorf("writing csv rows: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flushing csv export: %w", err)
		}
		out.ContentType = domain.ContentTypeCSV
	}
	out.Content = buf.Bytes()
	return out, nil
}

// exportRows resolves client and template names, looking each id up once.
// Names of rows whose client or template has disappeared are left empty.
func (s *historyService) exportRows(ctx context.Context, entries []domain.GenerationHistory) ([]csvexport.Row, error) {
	clients := make(map[uuid.UUID]string)
	templates := make(map[uuid.UUID]string)
	rows := make([]csvexport.Row, 0, len(entries))

	for i := range entries {
		e := entries[i]
		clientName, ok := clients[e.ClientID]
		if !ok {
			client, err := s.clientRepo.GetByID(ctx, e.ClientID)
			switch {
			case err == nil:
				clientName = client.Name
			case errors.Is(err, domain.ErrClientNotFound):
			default:
				return nil, err
			}
			clients[e.ClientID] = clientName
		}

		templateName, ok := templates[e.TemplateID]
		if !ok {
			tmpl, err := s.templateRepo.GetByID(ctx, e.TemplateID)
			switch {
			case err == nil:
				templateName = tmpl.Name
			case errors.Is(err, domain.ErrTemplateNotFound):
			default:
				return nil, err
			}
			templates[e.TemplateID] = templateName
		}

		rows = append(rows, csvexport.Row{Entry: e, ClientName: clientName, TemplateName: templateName})
	}
	return rows, nil
}
