package generation

import (
	"context"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// Generator defines the interface for authoring flashcards with an external
// language model. Implementations live under internal/platform so the core
// never couples to a specific provider.
type Generator interface {
	// GenerateCards writes count flashcards about the given topic for the
	// deck identified by deckID. The returned cards are validated domain
	// objects that have not yet been persisted.
	GenerateCards(ctx context.Context, topic string, deckID uuid.UUID, count int) ([]*domain.Card, error)
}
