package metrics

import "time"

// Outcome labels a finished generation request.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Recorder defines observability hooks for document generation and HTTP traffic.
// NoopRecorder is used when metrics are disabled.
type Recorder interface {
	ObserveGeneration(mode string, d time.Duration, outcome Outcome)
	AddDocumentsGenerated(n int)
	AddUnresolvedPlaceholders(n int)
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveGeneration(string, time.Duration, Outcome)      {}
func (NoopRecorder) AddDocumentsGenerated(int)                             {}
func (NoopRecorder) AddUnresolvedPlaceholders(int)                         {}
func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
