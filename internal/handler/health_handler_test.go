package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"docgen/internal/handler"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(fakePinger{err: errors.New("down")})

	c, w := newJSONContext(http.MethodGet, "/healthz", nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"reachable", nil, http.StatusOK},
		{"unreachable", errors.New("dial tcp: refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(fakePinger{err: tt.err})

			c, w := newJSONContext(http.MethodGet, "/readyz", nil)
			h.Readiness(c)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
