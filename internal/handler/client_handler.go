package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docgen/internal/service"
)

// ClientHandler handles client endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create handles POST /api/v1/clients
// @Summary Create a client
// @Description Create a client. Names are unique.
// @Tags clients
// @Accept json
// @Produce json
// @Param request body CreateClientRequest true "Client details"
// @Success 201 {object} Response{data=domain.Client} "Client created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Name already exists"
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var input service.CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, client)
}

// List handles GET /api/v1/clients
// @Summary List clients
// @Tags clients
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Client,meta=PagMeta} "List of clients"
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	clients, total, err := h.clientService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, clients, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/clients/:id
// @Summary Get client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID (UUID)"
// @Success 200 {object} Response{data=domain.Client} "Client details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Client not found"
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid client ID")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// Update handles PUT /api/v1/clients/:id
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID (UUID)"
// @Param request body UpdateClientRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Client} "Client updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Client not found"
// @Failure 409 {object} ErrorResponseBody "Name already exists"
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid client ID")
		return
	}

	var input service.UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// Delete handles DELETE /api/v1/clients/:id
// @Summary Delete a client
// @Description Delete a client with its stored values and generation history.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Client deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Client not found"
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid client ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "client deleted"})
}
