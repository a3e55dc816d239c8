package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
	"docgen/internal/handler"
	"docgen/internal/service"
	"docgen/mocks"
)

func TestGenerateHandler_Generate_Single(t *testing.T) {
	svc := new(mocks.MockGenerateService)
	h := handler.NewGenerateHandler(svc)

	input := service.GenerateInput{TemplateID: uuid.New(), ClientIDs: []uuid.UUID{uuid.New()}}
	svc.On("Generate", mock.Anything, input).Return(&service.GenerateResult{
		Mode:        domain.GenerationSingle,
		Filename:    "offer__Ivan Petrov.docx",
		ContentType: domain.ContentTypeDocx,
		Content:     []byte("docx-bytes"),
		Documents:   []service.GeneratedDocument{{}},
	}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/generate", input)
	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ContentTypeDocx, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="offer__Ivan Petrov.docx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", w.Header().Get("X-Generated-Count"))
	assert.Equal(t, "docx-bytes", w.Body.String())
}

func TestGenerateHandler_Generate_Bulk(t *testing.T) {
	svc := new(mocks.MockGenerateService)
	h := handler.NewGenerateHandler(svc)

	svc.On("Generate", mock.Anything, mock.Anything).Return(&service.GenerateResult{
		Mode:        domain.GenerationBulk,
		Filename:    service.BulkArchiveName,
		ContentType: domain.ContentTypeZip,
		Content:     []byte("zip-bytes"),
		Documents:   make([]service.GeneratedDocument, 3),
	}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/generate", service.GenerateInput{
		TemplateID: uuid.New(),
		ClientIDs:  []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	})
	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ContentTypeZip, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=generated_documents.zip`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", w.Header().Get("X-Generated-Count"))
}

func TestGenerateHandler_Generate_BadEmail(t *testing.T) {
	svc := new(mocks.MockGenerateService)
	h := handler.NewGenerateHandler(svc)

	c, w := newJSONContext(http.MethodPost, "/api/v1/generate", map[string]interface{}{
		"template_id":  uuid.New(),
		"client_ids":   []uuid.UUID{uuid.New()},
		"notify_email": "not-an-email",
	})
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateHandler_Generate_NoClients(t *testing.T) {
	svc := new(mocks.MockGenerateService)
	h := handler.NewGenerateHandler(svc)

	svc.On("Generate", mock.Anything, mock.Anything).Return(nil, domain.ErrNoClients)

	c, w := newJSONContext(http.MethodPost, "/api/v1/generate", service.GenerateInput{TemplateID: uuid.New()})
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_CLIENTS", decodeResponse(t, w).Error.Code)
}

func TestGenerateHandler_Generate_UnknownClientIsNamed(t *testing.T) {
	svc := new(mocks.MockGenerateService)
	h := handler.NewGenerateHandler(svc)

	missing := uuid.New()
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("client %s: %w", missing, domain.ErrClientNotFound))

	c, w := newJSONContext(http.MethodPost, "/api/v1/generate", service.GenerateInput{
		TemplateID: uuid.New(),
		ClientIDs:  []uuid.UUID{missing},
	})
	h.Generate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "CLIENT_NOT_FOUND", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, missing.String())
}
