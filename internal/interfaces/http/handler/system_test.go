package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingFunc func() error

func (f pingFunc) Ping(context.Context) error { return f() }

func TestSystemHandler(t *testing.T) {
	f := newFixture(t)

	t.Run("healthy", func(t *testing.T) {
		h := NewSystemHandler(pingFunc(func() error { return nil }), "1.2.0", zap.NewNop())
		r := f.engine(nil)
		r.GET("/health", h.Health)
		r.GET("/info", h.Info)

		w := do(r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","database":"up"}`, w.Body.String())

		w = do(r, http.MethodGet, "/info", "")
		assert.Contains(t, w.Body.String(), `"version":"1.2.0"`)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewSystemHandler(pingFunc(func() error { return errors.New("refused") }), "1.2.0", zap.NewNop())
		r := f.engine(nil)
		r.GET("/health", h.Health)

		w := do(r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
