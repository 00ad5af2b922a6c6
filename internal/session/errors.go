package session

import "errors"

// Sentinel errors returned by session operations. Callers map these onto
// transport-level responses; the orchestrator never returns raw internal
// errors for caller mistakes.
var (
	// ErrInvalidInput indicates an unusable argument: an unknown rating,
	// an item the player does not hold, or an empty deck.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates the operation is not legal given the
	// session's current state, such as answering before revealing a card
	// or acting after the game has ended.
	ErrInvalidState = errors.New("invalid session state")

	// ErrNoSession indicates no session exists for the requested key.
	ErrNoSession = errors.New("no active session")
)
