package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums the counter samples of family name whose labels include want.
func counterValue(t *testing.T, reg *prom.Registry, name string, want map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveGeneration("bulk", 150*time.Millisecond, OutcomeSuccess)
	pr.AddDocumentsGenerated(3)
	pr.AddUnresolvedPlaceholders(2)
	pr.ObserveHTTPRequest(http.MethodPost, "/api/v1/generate", http.StatusOK, 20*time.Millisecond)
	pr.ObserveHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, float64(3), counterValue(t, reg, "docgen_documents_generated_total", nil))
	assert.Equal(t, float64(2), counterValue(t, reg, "docgen_unresolved_placeholders_total", nil))
	assert.Equal(t, float64(1), counterValue(t, reg, "docgen_generations_total",
		map[string]string{"mode": "bulk", "outcome": "success"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "docgen_http_requests_total",
		map[string]string{"method": "GET", "route": "unmatched", "status": "404"}))
}

func TestHTTPHandler_ServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.AddDocumentsGenerated(1)

	w := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "docgen_documents_generated_total 1")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveGeneration("single", time.Second, OutcomeFailed)
	r.AddDocumentsGenerated(1)
	r.AddUnresolvedPlaceholders(1)
	r.ObserveHTTPRequest("GET", "/", 200, time.Second)
}
