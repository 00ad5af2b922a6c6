package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for CardReviewState
var (
	ErrEmptyStateCardID  = errors.New("review state card ID cannot be empty")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor = errors.New("ease factor must be greater than 1.0")
)

// CardReviewState tracks the spaced repetition state for a single flashcard.
// It implements the bookkeeping side of an SM-2 derivative: the srs package
// owns all transitions and callers must treat instances as immutable,
// replacing them with the state returned by srs.Service.Review.
//
// Interval is measured in days and only meaningful once the card has
// graduated; while IsLearning is true the card cycles through minutes-scale
// learning steps and Interval stays at 0.
type CardReviewState struct {
	CardID         uuid.UUID  `json:"card_id"`
	EaseFactor     float64    `json:"ease_factor"`     // Ease factor (1.3-3.5)
	Interval       int        `json:"interval"`        // Current interval in days
	Repetitions    int        `json:"repetitions"`     // Consecutive successful reviews since last reset
	LastReviewedAt time.Time  `json:"last_reviewed_at"`
	NextDueAt      *time.Time `json:"next_due_at"` // nil means due now
	TotalReviews   int        `json:"total_reviews"`
	TotalCorrect   int        `json:"total_correct"`   // good or easy answers
	TotalIncorrect int        `json:"total_incorrect"` // again answers
	TotalHard      int        `json:"total_hard"`      // hard answers
	IsLearning     bool       `json:"is_learning"` // true until the card graduates past the learning steps
	IsLapsed       bool       `json:"is_lapsed"`   // true if the card regressed after graduating
	LastRating     Rating     `json:"last_rating,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCardReviewState creates review state for a card that has never been
// seen. New cards start in the learning phase with the default ease factor
// and are due immediately (nil NextDueAt).
func NewCardReviewState(cardID uuid.UUID) (*CardReviewState, error) {
	now := time.Now().UTC()
	state := &CardReviewState{
		CardID:     cardID,
		EaseFactor: 2.5, // Default SM-2 ease factor
		Interval:   0,
		IsLearning: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks if the CardReviewState has valid data.
func (s *CardReviewState) Validate() error {
	if s.CardID == uuid.Nil {
		return ErrEmptyStateCardID
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	return nil
}

// IsDue reports whether the card needs review at the given time.
// A card with no scheduled review time is always due.
func (s *CardReviewState) IsDue(now time.Time) bool {
	if s.NextDueAt == nil {
		return true
	}
	return !now.Before(*s.NextDueAt)
}

// IsNew reports whether the card has never been reviewed.
func (s *CardReviewState) IsNew() bool {
	return s.TotalReviews == 0
}

// Accuracy returns the percentage of reviews rated good or easy, in
// [0, 100]. Returns 0 for a card that has never been reviewed.
func (s *CardReviewState) Accuracy() float64 {
	if s.TotalReviews == 0 {
		return 0.0
	}
	return float64(s.TotalCorrect) / float64(s.TotalReviews) * 100
}

// Clone returns a deep copy of the state. The srs package clones before
// mutating so callers keep a consistent prior snapshot.
func (s *CardReviewState) Clone() *CardReviewState {
	clone := *s
	if s.NextDueAt != nil {
		due := *s.NextDueAt
		clone.NextDueAt = &due
	}
	return &clone
}
