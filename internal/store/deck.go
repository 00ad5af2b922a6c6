package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/deckraid/deckraid-api/internal/domain"
)

// DeckStore defines the interface for deck and card persistence.
type DeckStore interface {
	// CreateDeck saves a new deck together with its cards.
	// This method MUST be run within a transaction so the deck and its
	// cards are created atomically; use WithTx and RunInTransaction.
	// Returns validation errors if the deck or any card is invalid.
	CreateDeck(ctx context.Context, deck *domain.Deck, cards []*domain.Card) error

	// GetDeck retrieves deck metadata by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListDecks retrieves all decks, most recently created first.
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// GetCards retrieves all cards belonging to a deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetCards(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// AddCards appends generated or imported cards to an existing deck
	// and updates the deck's card count.
	// Returns ErrDeckNotFound if the deck does not exist.
	AddCards(ctx context.Context, deckID uuid.UUID, cards []*domain.Card) error

	// WithTx returns a new DeckStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically via RunInTransaction).
	WithTx(tx *sql.Tx) DeckStore
}
