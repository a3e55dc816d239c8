package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docgen/internal/domain"
	"docgen/internal/service"
)

// HistoryHandler handles generation history endpoints.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// parseHistoryFilter reads optional client_id and template_id query params.
// Returns false if a param is malformed (error response already written).
func parseHistoryFilter(c *gin.Context) (domain.HistoryFilter, bool) {
	var filter domain.HistoryFilter
	for param, dst := range map[string]**uuid.UUID{
		"client_id":   &filter.ClientID,
		"template_id": &filter.TemplateID,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+param)
			return filter, false
		}
		*dst = &id
	}
	return filter, true
}

// List handles GET /api/v1/history
// @Summary List generation history
// @Tags history
// @Produce json
// @Param client_id query string false "Filter by client (UUID)"
// @Param template_id query string false "Filter by template (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.GenerationHistory,meta=PagMeta} "History entries, newest first"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	filter, ok := parseHistoryFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, total, err := h.historyService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/history/:id
// @Summary Get a history entry with its download link
// @Tags history
// @Produce json
// @Param id path string true "History ID (UUID)"
// @Success 200 {object} Response{data=HistoryWithDownloadURL} "History entry"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "History entry not found"
// @Router /history/{id} [get]
func (h *HistoryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid history ID")
		return
	}

	entry, err := h.historyService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	url, err := h.historyService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, HistoryWithDownloadURL{Entry: *entry, DownloadURL: url})
}

// Export handles GET /api/v1/history/export
// @Summary Export generation history
// @Description CSV (UTF-8 with BOM) or XLSX, honouring the same filters as the listing.
// @Tags history
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" Enums(csv, xlsx) default(csv)
// @Param client_id query string false "Filter by client (UUID)"
// @Param template_id query string false "Filter by template (UUID)"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Invalid filter or format"
// @Router /history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	filter, ok := parseHistoryFilter(c)
	if !ok {
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportCSV)))
	if format != domain.ExportCSV && format != domain.ExportXLSX {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	export, err := h.historyService.Export(c.Request.Context(), filter, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAttachment(c, export.Filename, export.ContentType, export.Content)
}
