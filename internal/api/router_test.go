package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckraid/deckraid-api/internal/platform/logger"
)

func TestRequestLogger_AttachesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(base))
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		logger.FromContext(req.Context()).InfoContext(req.Context(), "handled")
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, buf.String(), "request_id=req-42", "handler logs carry the request's correlation ID")
}

func TestRequestLogger_NilBaseFallsBackToDefault(t *testing.T) {
	t.Parallel()

	handler := requestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.NotNil(t, logger.FromContext(req.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
