package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docgen/internal/service"
)

// EntityHandler handles placeholder entity endpoints.
type EntityHandler struct {
	entityService service.EntityService
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(entityService service.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// Create handles POST /api/v1/entities
// @Summary Create an entity
// @Description Create a placeholder entity. A bare code such as FIO is stored as {FIO}.
// @Tags entities
// @Accept json
// @Produce json
// @Param request body CreateEntityRequest true "Entity details"
// @Success 201 {object} Response{data=domain.Entity} "Entity created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Code already exists"
// @Router /entities [post]
func (h *EntityHandler) Create(c *gin.Context) {
	var input service.CreateEntityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entity, err := h.entityService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entity)
}

// List handles GET /api/v1/entities
// @Summary List entities
// @Tags entities
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Entity,meta=PagMeta} "List of entities"
// @Router /entities [get]
func (h *EntityHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	entities, total, err := h.entityService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entities, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/entities/:id
// @Summary Get entity by ID
// @Tags entities
// @Produce json
// @Param id path string true "Entity ID (UUID)"
// @Success 200 {object} Response{data=domain.Entity} "Entity details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Entity not found"
// @Router /entities/{id} [get]
func (h *EntityHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity ID")
		return
	}

	entity, err := h.entityService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entity)
}

// Update handles PUT /api/v1/entities/:id
// @Summary Update an entity
// @Tags entities
// @Accept json
// @Produce json
// @Param id path string true "Entity ID (UUID)"
// @Param request body UpdateEntityRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Entity} "Entity updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Entity not found"
// @Failure 409 {object} ErrorResponseBody "Code already exists"
// @Router /entities/{id} [put]
func (h *EntityHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity ID")
		return
	}

	var input service.UpdateEntityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entity)
}

// Delete handles DELETE /api/v1/entities/:id
// @Summary Delete an entity
// @Description Delete an entity and every client value stored for it.
// @Tags entities
// @Produce json
// @Param id path string true "Entity ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Entity deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Entity not found"
// @Router /entities/{id} [delete]
func (h *EntityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity ID")
		return
	}

	if err := h.entityService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "entity deleted"})
}
