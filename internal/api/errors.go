package api

import (
	"errors"
	"net/http"

	"github.com/deckraid/deckraid-api/internal/generation"
	"github.com/deckraid/deckraid-api/internal/session"
	"github.com/deckraid/deckraid-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This prevents leaking internal error types or messages
// to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors; IsNotFoundError covers every store sentinel that
	// wraps store.ErrNotFound.
	case store.IsNotFoundError(err),
		errors.Is(err, session.ErrNoSession):
		return http.StatusNotFound

	// Sequencing errors: the request is well-formed but not legal right now
	case errors.Is(err, session.ErrInvalidState):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Duplicate errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Upstream LLM trouble
	case errors.Is(err, generation.ErrTransientFailure):
		return http.StatusBadGateway
	case errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error type, never the raw error text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrSaveNotFound):
		return "Save not found"
	case errors.Is(err, session.ErrNoSession):
		return "No active game for this deck"
	case errors.Is(err, session.ErrInvalidState):
		return "That action is not allowed right now"
	case errors.Is(err, session.ErrInvalidInput):
		return "Invalid input"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"
	case errors.Is(err, generation.ErrTransientFailure):
		return "Card generation is temporarily unavailable"
	case errors.Is(err, generation.ErrContentBlocked):
		return "Card generation was blocked for this topic"
	case errors.Is(err, generation.ErrInvalidResponse):
		return "Card generation produced an unusable result"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	default:
		return "An unexpected error occurred"
	}
}

// respondMappedError is the common tail of every handler's error path.
func respondMappedError(w http.ResponseWriter, r *http.Request, err error) {
	RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
