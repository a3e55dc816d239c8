package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docgen/internal/domain"
	"docgen/internal/handler"
	"docgen/internal/service"
	"docgen/mocks"
)

func TestTemplateHandler_Upload_Success(t *testing.T) {
	svc := new(mocks.MockTemplateService)
	h := handler.NewTemplateHandler(svc)

	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.TemplateUploadInput) bool {
		return in.Name == "Offer" && in.Header.Filename == "offer.docx"
	})).Return(&domain.Template{ID: uuid.New(), Name: "Offer", Filename: "offer.docx"}, nil)

	c, w := newUploadContext("/api/v1/templates/upload", "offer.docx", []byte("PK\x03\x04"), map[string]string{"name": "Offer"})
	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestTemplateHandler_Upload_NoFile(t *testing.T) {
	svc := new(mocks.MockTemplateService)
	h := handler.NewTemplateHandler(svc)

	c, w := newUploadContext("/api/v1/templates/upload", "", nil, map[string]string{"name": "Offer"})
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeResponse(t, w).Error.Code)
}

func TestTemplateHandler_Upload_TooLarge(t *testing.T) {
	svc := new(mocks.MockTemplateService)
	h := handler.NewTemplateHandler(svc)

	svc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrFileTooLarge)

	c, w := newUploadContext("/api/v1/templates/upload", "big.docx", []byte("PK"), nil)
	h.Upload(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestTemplateHandler_Placeholders(t *testing.T) {
	svc := new(mocks.MockTemplateService)
	h := handler.NewTemplateHandler(svc)

	id := uuid.New()
	svc.On("Placeholders", mock.Anything, id).Return([]string{"{CODE}", "{FIO}"}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/templates/"+id.String()+"/placeholders", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Placeholders(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":true,"data":{"template_id":"`+id.String()+`","placeholders":["{CODE}","{FIO}"]}}`,
		w.Body.String())
}

func TestTemplateHandler_Delete_NotFound(t *testing.T) {
	svc := new(mocks.MockTemplateService)
	h := handler.NewTemplateHandler(svc)

	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(domain.ErrTemplateNotFound)

	c, w := newJSONContext(http.MethodDelete, "/api/v1/templates/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", decodeResponse(t, w).Error.Code)
}
