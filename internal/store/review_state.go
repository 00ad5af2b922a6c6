package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/deckraid/deckraid-api/internal/domain"
)

// WeakCard summarizes a card the learner struggles with, produced by
// ReviewStateStore.GetWeakCards for the statistics surface.
type WeakCard struct {
	CardID         uuid.UUID `json:"card_id"`
	Front          string    `json:"front"`
	Accuracy       float64   `json:"accuracy"`
	TotalReviews   int       `json:"total_reviews"`
	TotalIncorrect int       `json:"total_incorrect"`
}

// ReviewStateStore defines the interface for per-card review state
// persistence. States are keyed by (card, deck); writes are idempotent
// upserts so a session can flush after every answer.
type ReviewStateStore interface {
	// ListByDeck retrieves all persisted review states for a deck.
	// The result may be empty for a fresh deck; that is not an error.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.CardReviewState, error)

	// Upsert creates or replaces the review state for a card.
	// Returns validation errors if the state is invalid.
	Upsert(ctx context.Context, deckID uuid.UUID, state *domain.CardReviewState) error

	// UpsertAll creates or replaces review states for many cards.
	// This method MUST be run within a transaction for atomicity;
	// use WithTx and RunInTransaction.
	UpsertAll(ctx context.Context, deckID uuid.UUID, states []*domain.CardReviewState) error

	// GetWeakCards retrieves up to limit cards with accuracy at or below
	// 60% over at least three reviews, worst first.
	GetWeakCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*WeakCard, error)

	// WithTx returns a new ReviewStateStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) ReviewStateStore
}
