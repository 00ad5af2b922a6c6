package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GameSave is a persisted snapshot of a full game session. The snapshot
// payload is opaque to the store; the session package owns its shape.
type GameSave struct {
	ID        uuid.UUID       `json:"id"`
	DeckID    uuid.UUID       `json:"deck_id"`
	Name      string          `json:"name"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaveStore defines the interface for game save persistence.
type SaveStore interface {
	// Create persists a new save and returns its generated ID.
	Create(ctx context.Context, deckID uuid.UUID, name string, snapshot json.RawMessage) (uuid.UUID, error)

	// Get retrieves a save by its ID.
	// Returns ErrSaveNotFound if the save does not exist.
	Get(ctx context.Context, id uuid.UUID) (*GameSave, error)

	// ListByDeck retrieves all saves for a deck, most recent first.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*GameSave, error)

	// Delete removes a save by its ID.
	// Returns ErrSaveNotFound if the save does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
