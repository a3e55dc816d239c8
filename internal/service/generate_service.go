package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"docgen/internal/config"
	"docgen/internal/docx"
	"docgen/internal/domain"
	"docgen/internal/metrics"
	"docgen/internal/port"
)

// BulkArchiveName is the download name of a multi-client generation.
const BulkArchiveName = "generated_documents.zip"

// GenerateInput is the DTO for generation requests.
type GenerateInput struct {
	TemplateID  uuid.UUID   `json:"template_id" binding:"required"`
	ClientIDs   []uuid.UUID `json:"client_ids"`
	UserID      *uuid.UUID  `json:"user_id"`
	NotifyEmail string      `json:"notify_email" binding:"omitempty,email"`
}

// GeneratedDocument is one merged output.
type GeneratedDocument struct {
	ClientID   uuid.UUID
	ClientName string
	Filename   string
	Content    []byte
	History    *domain.GenerationHistory
	Unresolved []string
}

// GenerateResult is the payload returned to the caller: a single DOCX or a zip
// archive holding one DOCX per client.
type GenerateResult struct {
	Mode        domain.GenerationMode
	Filename    string
	ContentType string
	Content     []byte
	Documents   []GeneratedDocument
}

// GenerateService defines the document generation contract.
type GenerateService interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error)
}

type generateService struct {
	templateRepo port.TemplateRepository
	clientRepo   port.ClientRepository
	historyRepo  port.HistoryRepository
	values       ValueService
	storage      port.ObjectStorage
	email        port.EmailSender
	recorder     metrics.Recorder
	s3Cfg        *config.S3Config
	genCfg       *config.GenerateConfig
}

// NewGenerateService creates a new GenerateService implementation.
func NewGenerateService(
	templateRepo port.TemplateRepository,
	clientRepo port.ClientRepository,
	historyRepo port.HistoryRepository,
	values ValueService,
	storage port.ObjectStorage,
	email port.EmailSender,
	recorder metrics.Recorder,
	s3Cfg *config.S3Config,
	genCfg *config.GenerateConfig,
) GenerateService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &generateService{
		templateRepo: templateRepo,
		clientRepo:   clientRepo,
		historyRepo:  historyRepo,
		values:       values,
		storage:      storage,
		email:        email,
		recorder:     recorder,
		s3Cfg:        s3Cfg,
		genCfg:       genCfg,
	}
}

func (s *generateService) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	if len(input.ClientIDs) == 0 {
		return nil, domain.ErrNoClients
	}
	if s.genCfg.MaxClients > 0 && len(input.ClientIDs) > s.genCfg.MaxClients {
		return nil, domain.ErrTooManyClients
	}

	mode := domain.GenerationSingle
	if len(input.ClientIDs) > 1 {
		mode = domain.GenerationBulk
	}

	start := time.Now()
	result, err := s.generate(ctx, input, mode)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	s.recorder.ObserveGeneration(string(mode), time.Since(start), outcome)
	return result, err
}

func (s *generateService) generate(ctx context.Context, input GenerateInput, mode domain.GenerationMode) (*GenerateResult, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, input.TemplateID)
	if err != nil {
		return nil, err
	}
	data, err := s.storage.Download(ctx, s.s3Cfg.Bucket, tmpl.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("downloading template: %w", err)
	}
	base, err := docx.Open(data)
	if err != nil {
		log.Printf("generateService.Generate: stored template %s unreadable: %v", tmpl.ID, err)
		return nil, domain.ErrInvalidTemplate
	}
	tokens := docx.Scan(base.Document()).Sorted()

	log.Printf("generateService.Generate: template %s, %d clients, %d placeholders",
		tmpl.ID, len(input.ClientIDs), len(tokens))

	docs := make([]GeneratedDocument, len(input.ClientIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, clientID := range input.ClientIDs {
		g.Go(func() error {
			doc, err := s.render(gctx, base, tmpl, clientID, tokens, input.UserID)
			if err != nil {
				return err
			}
			docs[i] = *doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.discardOutputs(ctx, docs)
		return nil, err
	}
	if err := s.record(ctx, docs); err != nil {
		return nil, err
	}

	result := &GenerateResult{Mode: mode, Documents: docs}
	if mode == domain.GenerationSingle {
		result.Filename = docs[0].Filename
		result.ContentType = domain.ContentTypeDocx
		result.Content = docs[0].Content
	} else {
		archive, err := BuildArchive(docs)
		if err != nil {
			return nil, fmt.Errorf("building archive: %w", err)
		}
		result.Filename = BulkArchiveName
		result.ContentType = domain.ContentTypeZip
		result.Content = archive
	}

	if input.NotifyEmail != "" {
		s.notify(ctx, input.NotifyEmail, tmpl, docs)
	}
	return result, nil
}

// render produces and stores the document for one client. The base package is
// only read; each client merges into its own clone. The history entry is
// returned unsaved.
func (s *generateService) render(
	ctx context.Context,
	base *docx.Package,
	tmpl *domain.Template,
	clientID uuid.UUID,
	tokens []string,
	userID *uuid.UUID,
) (*GeneratedDocument, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, fmt.Errorf("client %s: %w", clientID, domain.ErrClientNotFound)
		}
		return nil, err
	}

	mapping, err := s.values.ResolveForClient(ctx, client.ID, tokens)
	if err != nil {
		return nil, err
	}
	var unresolved []string
	for _, tok := range tokens {
		if _, ok := mapping[tok]; !ok {
			unresolved = append(unresolved, tok)
		}
	}

	pkg := base.Clone()
	docx.Merge(pkg.Document(), mapping)
	content, err := pkg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("saving document for client %s: %w", client.ID, err)
	}

	filename := OutputFilename(tmpl.Filename, client.Name)
	historyID := uuid.New()
	key := fmt.Sprintf("outputs/%s/%s", historyID, filename)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(content),
		ContentType: domain.ContentTypeDocx,
		Size:        int64(len(content)),
	})
	if err != nil {
		log.Printf("generateService.render: S3 upload failed for %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	entry := &domain.GenerationHistory{
		ID:             historyID,
		UserID:         userID,
		ClientID:       client.ID,
		TemplateID:     tmpl.ID,
		OutputFilename: filename,
		StorageKey:     key,
		GeneratedAt:    time.Now().UTC(),
	}
	if len(unresolved) > 0 {
		log.Printf("generateService.render: client %s left %d placeholders unresolved: %s",
			client.ID, len(unresolved), strings.Join(unresolved, ", "))
	}

	return &GeneratedDocument{
		ClientID:   client.ID,
		ClientName: client.Name,
		Filename:   filename,
		Content:    content,
		History:    entry,
		Unresolved: unresolved,
	}, nil
}

// record writes one history row per document once every client has rendered,
// so a failed request leaves no history behind.
func (s *generateService) record(ctx context.Context, docs []GeneratedDocument) error {
	for i := range docs {
		if err := s.historyRepo.Create(ctx, docs[i].History); err != nil {
			s.discardOutputs(ctx, docs[i:])
			return fmt.Errorf("recording history: %w", err)
		}
		s.recorder.AddDocumentsGenerated(1)
		if n := len(docs[i].Unresolved); n > 0 {
			s.recorder.AddUnresolvedPlaceholders(n)
		}
	}
	return nil
}

// discardOutputs removes blobs already uploaded for a request that failed.
// Entries that never rendered have no history and are skipped.
func (s *generateService) discardOutputs(ctx context.Context, docs []GeneratedDocument) {
	for i := range docs {
		if docs[i].History == nil {
			continue
		}
		key := docs[i].History.StorageKey
		if err := s.storage.Delete(context.WithoutCancel(ctx), s.s3Cfg.Bucket, key); err != nil {
			log.Printf("generateService.discardOutputs: failed to delete %s: %v", key, err)
		}
	}
}

// notify mails download links for the generated documents. Failures are logged
// and never fail the generation.
func (s *generateService) notify(ctx context.Context, to string, tmpl *domain.Template, docs []GeneratedDocument) {
	links := make([]port.DocumentLink, 0, len(docs))
	for i := range docs {
		url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, docs[i].History.StorageKey, s.s3Cfg.PresignExpiry)
		if err != nil {
			log.Printf("generateService.notify: presign failed for %s: %v", docs[i].History.StorageKey, err)
			continue
		}
		links = append(links, port.DocumentLink{
			ClientName: docs[i].ClientName,
			Filename:   docs[i].Filename,
			URL:        url,
		})
	}
	if len(links) == 0 {
		return
	}
	if err := s.email.SendGeneratedDocuments(ctx, to, tmpl.Name, links); err != nil {
		log.Printf("generateService.notify: failed to email %s: %v", to, err)
	}
}

func (s *generateService) concurrency() int {
	if s.genCfg.Concurrency < 1 {
		return 1
	}
	return s.genCfg.Concurrency
}

// OutputFilename names a generated document "<template stem>__<client name>.docx",
// with spaces in the client name replaced by underscores.
func OutputFilename(templateFilename, clientName string) string {
	stem := strings.TrimSuffix(templateFilename, path.Ext(templateFilename))
	client := strings.ReplaceAll(strings.TrimSpace(clientName), " ", "_")
	client = strings.NewReplacer("/", "_", `\`, "_").Replace(client)
	return stem + "__" + client + domain.TemplateExtension
}

// BuildArchive zips the documents in order. Repeated names get a "_N" suffix.
func BuildArchive(docs []GeneratedDocument) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]bool, len(docs))
	for i := range docs {
		name := docs[i].Filename
		ext := path.Ext(name)
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(docs[i].Filename, ext), n, ext)
		}
		used[name] = true

		modified := time.Now().UTC()
		if docs[i].History != nil {
			modified = docs[i].History.GeneratedAt
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(docs[i].Content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
