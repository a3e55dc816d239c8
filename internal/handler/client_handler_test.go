package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docgen/internal/domain"
	"docgen/internal/handler"
	"docgen/internal/service"
	"docgen/mocks"
)

func TestClientHandler_Create_Success(t *testing.T) {
	svc := new(mocks.MockClientService)
	h := handler.NewClientHandler(svc)

	input := service.CreateClientInput{Name: "Acme"}
	svc.On("Create", mock.Anything, input).Return(&domain.Client{ID: uuid.New(), Name: "Acme"}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/clients", input)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestClientHandler_Create_DuplicateName(t *testing.T) {
	svc := new(mocks.MockClientService)
	h := handler.NewClientHandler(svc)

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateClientName)

	c, w := newJSONContext(http.MethodPost, "/api/v1/clients", service.CreateClientInput{Name: "Acme"})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_CLIENT_NAME", decodeResponse(t, w).Error.Code)
}

func TestClientHandler_Update_Success(t *testing.T) {
	svc := new(mocks.MockClientService)
	h := handler.NewClientHandler(svc)

	id := uuid.New()
	name := "Globex"
	svc.On("Update", mock.Anything, id, service.UpdateClientInput{Name: &name}).
		Return(&domain.Client{ID: id, Name: name}, nil)

	c, w := newJSONContext(http.MethodPut, "/api/v1/clients/"+id.String(), map[string]string{"name": name})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
