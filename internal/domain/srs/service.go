package srs

import (
	"errors"
	"time"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// Common errors
var (
	ErrNilState      = errors.New("card review state cannot be nil")
	ErrInvalidRating = errors.New("invalid review rating")
)

// Service defines the interface for SRS scheduling operations.
type Service interface {
	// Review computes the post-review state for a card given the
	// learner's rating. The returned state is a new instance; the input
	// is never modified. Callers are responsible for persisting it.
	Review(
		state *domain.CardReviewState,
		rating domain.Rating,
		now time.Time,
	) (*domain.CardReviewState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Review implements the Service interface.
func (s *defaultService) Review(
	state *domain.CardReviewState,
	rating domain.Rating,
	now time.Time,
) (*domain.CardReviewState, error) {
	if state == nil {
		return nil, ErrNilState
	}

	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}

	return nextState(state, rating, now, s.params), nil
}
