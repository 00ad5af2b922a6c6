package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/deckraid/deckraid-api/internal/domain"
)

// ReviewEvent is one append-only row of review history: what was rated,
// what damage it rolled, and the schedule the card moved to. Used for
// history and analytics outside the game core.
type ReviewEvent struct {
	CardID      uuid.UUID     `json:"card_id"`
	DeckID      uuid.UUID     `json:"deck_id"`
	SessionID   uuid.UUID     `json:"session_id"`
	Rating      domain.Rating `json:"rating"`
	Damage      int           `json:"damage"`
	NewEase     float64       `json:"new_ease"`
	NewInterval int           `json:"new_interval"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ReviewEventStore defines the interface for the append-only review log.
type ReviewEventStore interface {
	// Record appends a review event. Events are never updated or deleted.
	Record(ctx context.Context, event *ReviewEvent) error

	// ListRecent retrieves up to limit events for a deck, newest first.
	ListRecent(ctx context.Context, deckID uuid.UUID, limit int) ([]*ReviewEvent, error)
}
