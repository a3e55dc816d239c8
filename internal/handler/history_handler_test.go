package handler_test

import (
	"net/http"
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

func TestHistoryHandler_List_Filtered(t *testing.T) {
	svc := new(mocks.MockHistoryService)
	h := handler.NewHistoryHandler(svc)

	clientID := uuid.New()
	svc.On("List", mock.Anything, domain.HistoryFilter{ClientID: &clientID}, 0, 20).
		Return([]domain.GenerationHistory{{ID: uuid.New(), ClientID: clientID}}, 1, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/history?client_id="+clientID.String(), nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	svc.AssertExpectations(t)
}

func TestHistoryHandler_List_BadTemplateID(t *testing.T) {
	svc := new(mocks.MockHistoryService)
	h := handler.NewHistoryHandler(svc)

	c, w := newJSONContext(http.MethodGet, "/api/v1/history?template_id=zzz", nil)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
}

func TestHistoryHandler_GetByID_WithDownloadURL(t *testing.T) {
	svc := new(mocks.MockHistoryService)
	h := handler.NewHistoryHandler(svc)

	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(&domain.GenerationHistory{ID: id}, nil)
	svc.On("GetDownloadURL", mock.Anything, id).Return("https://signed", nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/history/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"download_url":"https://signed"`)
}

func TestHistoryHandler_Export_CSV(t *testing.T) {
	svc := new(mocks.MockHistoryService)
	h := handler.NewHistoryHandler(svc)

	svc.On("Export", mock.Anything, domain.HistoryFilter{}, domain.ExportCSV).Return(&service.HistoryExport{
		Filename:    "generation_history_2026-01-02.csv",
		ContentType: domain.ContentTypeCSV,
		Content:     []byte("History ID\n"),
	}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/history/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ContentTypeCSV, w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=generation_history_2026-01-02.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "History ID\n", w.Body.String())
}

func TestHistoryHandler_Export_XLSX(t *testing.T) {
	svc := new(mocks.MockHistoryService)
	h := handler.NewHistoryHandler(svc)

	svc.On("Export", mock.Anything, domain.HistoryFilter{}, domain.ExportXLSX).Return(&service.HistoryExport{
		Filename:    "generation_history_2026-01-02.xlsx",
		ContentType: domain.ContentTypeXLSX,
		Content:     []byte("PK"),
	}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/history/export?format=xlsx", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ContentTypeXLSX, w.Header().Get("Content-Type"))
}

func TestHistoryHandler_Export_InvalidFormat(t *testing.T) {
	svc := new(mocks.MockHistoryService)
	h := handler.NewHistoryHandler(svc)

	c, w := newJSONContext(http.MethodGet, "/api/v1/history/export?format=pdf", nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
}
