package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// Status describes the session lifecycle. A session that does not exist at
// all is represented by its absence from the Manager, not by a Status.
type Status string

const (
	// StatusActive means the run is in progress and turns may be taken.
	StatusActive Status = "active"
	// StatusWon means every encounter was cleared.
	StatusWon Status = "won"
	// StatusLost means the player's HP reached zero.
	StatusLost Status = "lost"
)

// State holds the mutable game-side state of a run. Review scheduling
// state lives separately in the per-card CardReviewState records.
type State struct {
	SessionID       uuid.UUID      `json:"session_id"`
	DeckID          uuid.UUID      `json:"deck_id"`
	Status          Status         `json:"status"`
	Player          *domain.Player `json:"player"`
	Enemy           *domain.Enemy  `json:"enemy,omitempty"`
	Encounter       int            `json:"encounter"`
	TotalEncounters int            `json:"total_encounters"`
	CardsReviewed   int            `json:"cards_reviewed"`
	CardsCorrect    int            `json:"cards_correct"`
	Inventory       []string       `json:"inventory"`
	StartedAt       time.Time      `json:"started_at"`
}

// Accuracy returns the percentage of answered cards rated good or easy.
func (s *State) Accuracy() float64 {
	if s.CardsReviewed == 0 {
		return 0
	}
	return float64(s.CardsCorrect) / float64(s.CardsReviewed) * 100
}

// Snapshot is the serialized form of a session used for saved games. It
// carries everything needed to resume exactly where the run left off,
// including the card that was on screen and whether its back was showing.
type Snapshot struct {
	Version       int                       `json:"version"`
	State         *State                    `json:"state"`
	ReviewStates  []*domain.CardReviewState `json:"review_states"`
	NewCardsShown int                       `json:"new_cards_shown"`
	CurrentCardID uuid.UUID                 `json:"current_card_id,omitempty"`
	Revealed      bool                      `json:"revealed"`
	SavedAt       time.Time                 `json:"saved_at"`
}

// snapshotVersion guards against loading saves written by an incompatible
// build.
const snapshotVersion = 1
