package handler

import (
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docgen/internal/domain"
	"docgen/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondAttachment sends content as a file download named filename.
func RespondAttachment(c *gin.Context, filename, contentType string, content []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, contentType, content)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound, "ENTITY_NOT_FOUND", "entity not found"
	case errors.Is(err, domain.ErrClientNotFound):
		// Carries the client id when raised during generation.
		return http.StatusNotFound, "CLIENT_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrValueNotFound):
		return http.StatusNotFound, "VALUE_NOT_FOUND", "value not found"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found"
	case errors.Is(err, domain.ErrHistoryNotFound):
		return http.StatusNotFound, "HISTORY_NOT_FOUND", "generation history entry not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateEntityCode):
		return http.StatusConflict, "DUPLICATE_ENTITY_CODE", "entity code already exists"
	case errors.Is(err, domain.ErrDuplicateClientName):
		return http.StatusConflict, "DUPLICATE_CLIENT_NAME", "client name already exists"
	case errors.Is(err, domain.ErrInvalidEntityCode):
		return http.StatusBadRequest, "INVALID_ENTITY_CODE", "entity code must look like {UPPER_SNAKE_CASE}"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: docx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidTemplate):
		return http.StatusBadRequest, "INVALID_TEMPLATE", "template is not a readable docx document"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrNoClients):
		return http.StatusBadRequest, "NO_CLIENTS", "at least one client is required"
	case errors.Is(err, domain.ErrTooManyClients):
		return http.StatusBadRequest, "TOO_MANY_CLIENTS", "too many clients in one generation request"
	case errors.Is(err, domain.ErrInvalidImport):
		return http.StatusBadRequest, "INVALID_IMPORT", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("[%s] internal error: %v", middleware.GetRequestID(c), err)
	}
	RespondError(c, status, code, msg)
}

// parsePagination reads offset and limit query params. Limit defaults to 20 and
// is capped at 100.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
