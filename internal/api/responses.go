package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/platform/logger"
)

// maxRequestBodyBytes bounds JSON request bodies; the largest legitimate
// payload is a deck import, which stays well under this.
const maxRequestBodyBytes = 1 << 20

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.ErrorContext(r.Context(), "failed to encode JSON response", slog.Any("error", err))
	}
}

// RespondWithError writes a JSON error response carrying only the safe
// message. The underlying error, if any, goes to the request-scoped log
// instead: 5xx at error level, everything else at debug.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	requestID := middleware.GetReqID(r.Context())
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	attrs := []any{
		slog.Int("status_code", status),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.String("request_id", requestID),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		log.DebugContext(r.Context(), "request rejected", attrs...)
	}

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:     message,
		RequestID: requestID,
	})
}

// DecodeJSON parses the request body into dst, rejecting oversized bodies
// and unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	// A second document in the body is a malformed request.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s is required", paramName)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid format", paramName)
	}
	return id, nil
}
