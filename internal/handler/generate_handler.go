package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docgen/internal/service"
)

// GenerateHandler handles document generation.
type GenerateHandler struct {
	generateService service.GenerateService
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generateService service.GenerateService) *GenerateHandler {
	return &GenerateHandler{generateService: generateService}
}

// Generate handles POST /api/v1/generate
// @Summary Generate documents
// @Description Merge each client's values into the template. One client yields a .docx,
// @Description several yield generated_documents.zip. Unresolved placeholders stay in the text.
// @Tags generate
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Produce application/zip
// @Param request body GenerateRequest true "Template and clients"
// @Success 200 {file} file "Generated document or archive"
// @Failure 400 {object} ErrorResponseBody "Validation error or no clients"
// @Failure 404 {object} ErrorResponseBody "Template or client not found"
// @Router /generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	var input service.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.generateService.Generate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("X-Generated-Count", strconv.Itoa(len(result.Documents)))
	RespondAttachment(c, result.Filename, result.ContentType, result.Content)
}
