package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docgen/internal/service"
)

// TemplateHandler handles DOCX template endpoints.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Upload handles POST /api/v1/templates/upload
// @Summary Upload a template
// @Description Upload a .docx template. A taken filename is stored as name_1.docx, name_2.docx, ...
// @Tags templates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "DOCX template"
// @Param name formData string false "Display name (defaults to the filename stem)"
// @Success 201 {object} Response{data=domain.Template} "Template uploaded"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type, or unreadable docx"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /templates/upload [post]
func (h *TemplateHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	name := c.PostForm("name")
	if name == "" {
		name = c.Query("name")
	}

	tmpl, err := h.templateService.Upload(c.Request.Context(), service.TemplateUploadInput{
		Name:   name,
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tmpl)
}

// List handles GET /api/v1/templates
// @Summary List templates
// @Tags templates
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Template,meta=PagMeta} "List of templates"
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	templates, total, err := h.templateService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, templates, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/templates/:id
// @Summary Get template by ID
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} Response{data=domain.Template} "Template details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	tmpl, err := h.templateService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tmpl)
}

// Placeholders handles GET /api/v1/templates/:id/placeholders
// @Summary List template placeholders
// @Description Tokens such as {FIO} found in the template body and tables, sorted.
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} Response{data=PlaceholdersResponse} "Placeholders"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Template not found"
// @Router /templates/{id}/placeholders [get]
func (h *TemplateHandler) Placeholders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	tokens, err := h.templateService.Placeholders(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, PlaceholdersResponse{TemplateID: id, Placeholders: tokens})
}

// Delete handles DELETE /api/v1/templates/:id
// @Summary Delete a template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Template deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Template not found"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "template deleted"})
}
