package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"docgen/internal/domain"
	"docgen/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrEntityNotFound, http.StatusNotFound, "ENTITY_NOT_FOUND"},
		{fmt.Errorf("wrapped: %w", domain.ErrTemplateNotFound), http.StatusNotFound, "TEMPLATE_NOT_FOUND"},
		{domain.ErrValueNotFound, http.StatusNotFound, "VALUE_NOT_FOUND"},
		{domain.ErrHistoryNotFound, http.StatusNotFound, "HISTORY_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicateEntityCode, http.StatusConflict, "DUPLICATE_ENTITY_CODE"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrInvalidTemplate, http.StatusBadRequest, "INVALID_TEMPLATE"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{domain.ErrTooManyClients, http.StatusBadRequest, "TOO_MANY_CLIENTS"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestMapDomainError_InternalMessageHidden(t *testing.T) {
	_, _, msg := handler.MapDomainError(errors.New("pq: password authentication failed"))

	assert.Equal(t, "an internal error occurred", msg)
}
