package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"docgen/internal/config"
	"docgen/internal/docx"
	"docgen/internal/domain"
	"docgen/internal/port"
)

// TemplateUploadInput is the DTO for template upload requests.
type TemplateUploadInput struct {
	Name   string
	File   multipart.File
	Header *multipart.FileHeader
}

// TemplateService defines the template management contract.
type TemplateService interface {
	Upload(ctx context.Context, input TemplateUploadInput) (*domain.Template, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error)
	List(ctx context.Context, offset, limit int) ([]domain.Template, int, error)
	Placeholders(ctx context.Context, id uuid.UUID) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type templateService struct {
	repo    port.TemplateRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewTemplateService creates a new TemplateService implementation.
func NewTemplateService(
	repo port.TemplateRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) TemplateService {
	return &templateService{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
	}
}

func (s *templateService) Upload(ctx context.Context, input TemplateUploadInput) (*domain.Template, error) {
	filename := cleanFilename(input.Header.Filename)
	if !strings.EqualFold(path.Ext(filename), domain.TemplateExtension) {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check before the full parse
	if !domain.AllowedTemplateContentTypes[http.DetectContentType(data)] {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := docx.Open(data); err != nil {
		log.Printf("templateService.Upload: rejecting %s: %v", filename, err)
		return nil, domain.ErrInvalidTemplate
	}

	filename, err = s.uniqueFilename(ctx, filename)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.TrimSuffix(filename, path.Ext(filename))
	}

	templateID := uuid.New()
	tmpl := &domain.Template{
		ID:         templateID,
		Name:       name,
		Filename:   filename,
		StorageKey: fmt.Sprintf("templates/%s/%s", templateID, filename),
		FileSize:   int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}

	log.Printf("templateService.Upload: uploading template %s (%d bytes) as %s", filename, tmpl.FileSize, tmpl.StorageKey)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         tmpl.StorageKey,
		Body:        bytes.NewReader(data),
		ContentType: domain.ContentTypeDocx,
		Size:        tmpl.FileSize,
	})
	if err != nil {
		log.Printf("templateService.Upload: S3 upload failed for template %s: %v", templateID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.Create(ctx, tmpl); err != nil {
		log.Printf("templateService.Upload: failed to create template metadata: %v", err)
		if derr := s.storage.Delete(ctx, s.cfg.Bucket, tmpl.StorageKey); derr != nil {
			log.Printf("templateService.Upload: failed to remove orphaned blob %s: %v", tmpl.StorageKey, derr)
		}
		return nil, fmt.Errorf("creating template metadata: %w", err)
	}

	return tmpl, nil
}

// uniqueFilename returns filename, or the first free "stem_N.ext" variant.
func (s *templateService) uniqueFilename(ctx context.Context, filename string) (string, error) {
	ext := path.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	candidate := filename
	for i := 1; ; i++ {
		exists, err := s.repo.FilenameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}

func (s *templateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context, offset, limit int) ([]domain.Template, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// Placeholders returns the sorted set of tokens found in the template body.
func (s *templateService) Placeholders(ctx context.Context, id uuid.UUID) ([]string, error) {
	tmpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.storage.Download(ctx, s.cfg.Bucket, tmpl.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("downloading template: %w", err)
	}
	pkg, err := docx.Open(data)
	if err != nil {
		log.Printf("templateService.Placeholders: stored template %s unreadable: %v", id, err)
		return nil, domain.ErrInvalidTemplate
	}
	return docx.Scan(pkg.Document()).Sorted(), nil
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	log.Printf("templateService.Delete: deleting template %s", id)

	tmpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, s.cfg.Bucket, tmpl.StorageKey); err != nil {
		log.Printf("templateService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.repo.Delete(ctx, id)
}

// cleanFilename strips any client-side directory components from an upload name.
func cleanFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	return strings.TrimSpace(path.Base(name))
}
