package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generationDuration *prom.HistogramVec
	generations        *prom.CounterVec
	documents          prom.Counter
	unresolved         prom.Counter
	httpDuration       *prom.HistogramVec
	httpRequests       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	pr := &PrometheusRecorder{
		generationDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docgen",
			Name:      "generation_duration_seconds",
			Help:      "Duration of generation requests by mode",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		generations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "generations_total",
			Help:      "Generation requests by mode and outcome",
		}, []string{"mode", "outcome"}),
		documents: prom.NewCounter(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "documents_generated_total",
			Help:      "Documents produced by merging a template with client values",
		}),
		unresolved: prom.NewCounter(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "unresolved_placeholders_total",
			Help:      "Placeholders left literal because the client had no value",
		}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docgen",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "route"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docgen",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(pr.generationDuration, pr.generations, pr.documents, pr.unresolved, pr.httpDuration, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) ObserveGeneration(mode string, d time.Duration, outcome Outcome) {
	p.generationDuration.WithLabelValues(mode).Observe(d.Seconds())
	p.generations.WithLabelValues(mode, string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddDocumentsGenerated(n int) {
	p.documents.Add(float64(n))
}

func (p *PrometheusRecorder) AddUnresolvedPlaceholders(n int) {
	p.unresolved.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// HTTPHandler returns an http.Handler that serves metrics for reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
