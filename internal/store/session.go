package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GameSession is the persisted record of one run: created when the game
// starts, finalized with totals and the outcome when it ends. Unlike
// GameSave snapshots, these rows are bookkeeping and are never loaded back
// into a live session.
type GameSession struct {
	ID               uuid.UUID  `json:"id"`
	DeckID           uuid.UUID  `json:"deck_id"`
	Status           string     `json:"status"`
	CardsReviewed    int        `json:"cards_reviewed"`
	CardsCorrect     int        `json:"cards_correct"`
	Score            int        `json:"score"`
	HighestEncounter int        `json:"highest_encounter"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
}

// SessionStore defines the interface for per-run session records.
type SessionStore interface {
	// Create persists the record for a run that just started.
	Create(ctx context.Context, session *GameSession) error

	// Finalize updates the record with the run's outcome and totals.
	// Returns ErrSessionNotFound if no record exists for the session ID.
	Finalize(ctx context.Context, session *GameSession) error

	// ListByDeck retrieves up to limit session records for a deck, most
	// recent first.
	ListByDeck(ctx context.Context, deckID uuid.UUID, limit int) ([]*GameSession, error)
}
