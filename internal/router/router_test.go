package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docgen/internal/config"
	"docgen/internal/domain"
	"docgen/internal/handler"
	"docgen/internal/metrics"
	"docgen/internal/router"
	"docgen/internal/service"
	"docgen/mocks"
)

type pinger struct{}

func (pinger) PingContext(context.Context) error { return nil }

func newEngine(t *testing.T, history *mocks.MockHistoryService) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	reg := prometheus.NewRegistry()
	h := router.Handlers{
		Health:   handler.NewHealthHandler(pinger{}),
		Entity:   handler.NewEntityHandler(new(mocks.MockEntityService)),
		Client:   handler.NewClientHandler(new(mocks.MockClientService)),
		Value:    handler.NewValueHandler(new(mocks.MockValueService)),
		Template: handler.NewTemplateHandler(new(mocks.MockTemplateService)),
		Generate: handler.NewGenerateHandler(new(mocks.MockGenerateService)),
		History:  handler.NewHistoryHandler(history),
	}
	return router.Setup(cfg, h, metrics.NewPrometheusRecorder(reg), reg), reg
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, http.NoBody)
	r.ServeHTTP(w, req)
	return w
}

func TestSetup_Health(t *testing.T) {
	r, _ := newEngine(t, new(mocks.MockHistoryService))

	w := serve(r, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetup_ExportRouteBeatsIDRoute(t *testing.T) {
	history := new(mocks.MockHistoryService)
	history.On("Export", mock.Anything, domain.HistoryFilter{}, domain.ExportCSV).
		Return(&service.HistoryExport{Filename: "h.csv", ContentType: domain.ContentTypeCSV, Content: []byte("x")}, nil)
	r, _ := newEngine(t, history)

	w := serve(r, http.MethodGet, "/api/v1/history/export")

	assert.Equal(t, http.StatusOK, w.Code)
	history.AssertExpectations(t)
}

func TestSetup_MetricsExposeRequests(t *testing.T) {
	r, _ := newEngine(t, new(mocks.MockHistoryService))
	serve(r, http.MethodGet, "/healthz")

	w := serve(r, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `docgen_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestSetup_SwaggerDoc(t *testing.T) {
	r, _ := newEngine(t, new(mocks.MockHistoryService))

	w := serve(r, http.MethodGet, "/swagger/doc.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/generate")
}
