package handler

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docgen/internal/domain"
	"docgen/internal/service"
)

// ValueHandler handles per-client entity value endpoints.
type ValueHandler struct {
	valueService service.ValueService
}

// NewValueHandler creates a new ValueHandler.
func NewValueHandler(valueService service.ValueService) *ValueHandler {
	return &ValueHandler{valueService: valueService}
}

// Set handles POST /api/v1/values
// @Summary Set a value
// @Description Set the client's value for an entity, replacing any existing value.
// @Tags values
// @Accept json
// @Produce json
// @Param request body SetValueRequest true "Value"
// @Success 200 {object} Response{data=domain.Value} "Stored value"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Entity or client not found"
// @Router /values [post]
func (h *ValueHandler) Set(c *gin.Context) {
	var input service.SetValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	value, err := h.valueService.Set(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, value)
}

// List handles GET /api/v1/values
// @Summary List values
// @Tags values
// @Produce json
// @Param client_id query string false "Only values of this client (UUID)"
// @Success 200 {object} Response{data=[]domain.Value} "Values"
// @Failure 400 {object} ErrorResponseBody "Invalid client ID"
// @Router /values [get]
func (h *ValueHandler) List(c *gin.Context) {
	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid client ID")
			return
		}
		clientID = &id
	}

	values, err := h.valueService.List(c.Request.Context(), clientID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if values == nil {
		values = []domain.Value{}
	}

	RespondOK(c, values)
}

// Update handles PUT /api/v1/values/:id
// @Summary Update a value
// @Tags values
// @Accept json
// @Produce json
// @Param id path string true "Value ID (UUID)"
// @Param request body UpdateValueRequest true "New text"
// @Success 200 {object} Response{data=domain.Value} "Value updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Value not found"
// @Router /values/{id} [put]
func (h *ValueHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid value ID")
		return
	}

	var input service.UpdateValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	value, err := h.valueService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, value)
}

// Delete handles DELETE /api/v1/values/:id
// @Summary Delete a value
// @Tags values
// @Produce json
// @Param id path string true "Value ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Value deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Value not found"
// @Router /values/{id} [delete]
func (h *ValueHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid value ID")
		return
	}

	if err := h.valueService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "value deleted"})
}

// Import handles POST /api/v1/values/import
// @Summary Import values from a spreadsheet
// @Description First sheet, header row "client | {CODE} | {CODE} ...", one client per row.
// @Description Missing clients are created; unknown entity columns are skipped.
// @Tags values
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX workbook"
// @Success 200 {object} Response{data=service.ImportResult} "Import summary"
// @Failure 400 {object} ErrorResponseBody "Missing file or unexpected layout"
// @Router /values/import [post]
func (h *ValueHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(path.Ext(header.Filename), ".xlsx") {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: xlsx")
		return
	}

	result, err := h.valueService.ImportXLSX(c.Request.Context(), file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
