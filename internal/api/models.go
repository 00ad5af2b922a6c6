package api

import (
	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// Common request/response structures

// CardPayload is one flashcard in a deck create or import request.
type CardPayload struct {
	Front string   `json:"front" validate:"required"`
	Back  string   `json:"back"  validate:"required"`
	Tags  []string `json:"tags,omitempty"`
}

// CreateDeckRequest defines the payload for the deck creation endpoint.
type CreateDeckRequest struct {
	Name  string        `json:"name"  validate:"required,max=200"`
	Tags  []string      `json:"tags,omitempty"`
	Cards []CardPayload `json:"cards" validate:"required,min=1,dive"`
}

// DeckResponse is the wire form of a deck.
type DeckResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TotalCards int       `json:"total_cards"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  string    `json:"created_at"`
}

// NewDeckResponse converts a domain deck to its wire form.
func NewDeckResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:         deck.ID,
		Name:       deck.Name,
		TotalCards: deck.TotalCards,
		Tags:       deck.Tags,
		CreatedAt:  deck.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GenerateCardsRequest defines the payload for the LLM card generation
// endpoint.
type GenerateCardsRequest struct {
	Topic string `json:"topic" validate:"required,max=500"`
	Count int    `json:"count" validate:"omitempty,gte=1,lte=50"`
}

// GenerateCardsResponse reports how many cards were added to the deck.
type GenerateCardsResponse struct {
	DeckID     uuid.UUID `json:"deck_id"`
	CardsAdded int       `json:"cards_added"`
}

// AnswerRequest defines the payload for the answer endpoint.
type AnswerRequest struct {
	Rating string `json:"rating" validate:"required"`
}

// PowerupRequest defines the payload for the powerup endpoint.
type PowerupRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// SaveRequest defines the payload for the save endpoint.
type SaveRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// SaveResponse carries the id of a created save.
type SaveResponse struct {
	SaveID uuid.UUID `json:"save_id"`
}

// LoadRequest defines the payload for the load endpoint.
type LoadRequest struct {
	SaveID uuid.UUID `json:"save_id" validate:"required"`
}

// SaveSummary is the wire form of a stored save, without its snapshot.
type SaveSummary struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Name      string    `json:"name"`
	CreatedAt string    `json:"created_at"`
}
