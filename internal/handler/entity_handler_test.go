package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func init() {
	gin.SetMode(gin.TestMode)
}

func newJSONContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestEntityHandler_Create_Success(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	input := service.CreateEntityInput{Name: "Full name", Code: "FIO"}
	svc.On("Create", mock.Anything, input).Return(&domain.Entity{ID: uuid.New(), Name: "Full name", Code: "{FIO}"}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/entities", input)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestEntityHandler_Create_MissingCode(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	c, w := newJSONContext(http.MethodPost, "/api/v1/entities", map[string]string{"name": "Full name"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEntityHandler_Create_InvalidCode(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidEntityCode)

	c, w := newJSONContext(http.MethodPost, "/api/v1/entities", service.CreateEntityInput{Name: "x", Code: "lower"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ENTITY_CODE", decodeResponse(t, w).Error.Code)
}

func TestEntityHandler_Create_Duplicate(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEntityCode)

	c, w := newJSONContext(http.MethodPost, "/api/v1/entities", service.CreateEntityInput{Name: "x", Code: "FIO"})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEntityHandler_List_Pagination(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	svc.On("List", mock.Anything, 5, 20).Return([]domain.Entity{{Code: "{A}"}}, 6, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/entities?offset=5&limit=500", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, handler.PagMeta{Total: 6, Offset: 5, Limit: 20}, *resp.Meta)
}

func TestEntityHandler_GetByID_InvalidID(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	c, w := newJSONContext(http.MethodGet, "/api/v1/entities/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
}

func TestEntityHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrEntityNotFound)

	c, w := newJSONContext(http.MethodGet, "/api/v1/entities/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ENTITY_NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func TestEntityHandler_Delete_Success(t *testing.T) {
	svc := new(mocks.MockEntityService)
	h := handler.NewEntityHandler(svc)

	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	c, w := newJSONContext(http.MethodDelete, "/api/v1/entities/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
