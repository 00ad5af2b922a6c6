package srs

import (
	"time"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// Priority score weights. The score is the sum of independent signals,
// capped at maxPriorityScore, and is only used for descending sort within
// a selection class.
const (
	maxPriorityScore = 100.0

	overdueScorePerDay = 5.0
	maxOverdueScore    = 50.0

	newCardScore = 20.0

	lowAccuracyScore     = 20.0
	lowAccuracyThreshold = 60.0
	lowAccuracyMinViews  = 3

	learningScore = 15.0
	lapsedScore   = 25.0
)

// PriorityScore computes how urgently a card needs review at the given
// time, in [0, 100]. Higher is more urgent. The signals, in order of
// weight: days overdue (5/day up to 50), lapsed after graduation (25),
// never reviewed (20), low accuracy over at least three reviews (20), and
// currently in the learning phase (15).
func PriorityScore(state *domain.CardReviewState, now time.Time) float64 {
	var score float64

	if state.NextDueAt != nil && !now.Before(*state.NextDueAt) {
		overdueDays := now.Sub(*state.NextDueAt).Hours() / 24
		overdue := float64(int(overdueDays)) * overdueScorePerDay
		if overdue > maxOverdueScore {
			overdue = maxOverdueScore
		}
		score += overdue
	}

	if state.IsNew() {
		score += newCardScore
	}

	if state.TotalReviews >= lowAccuracyMinViews && state.Accuracy() < lowAccuracyThreshold {
		score += lowAccuracyScore
	}

	if state.IsLearning {
		score += learningScore
	}

	if state.IsLapsed {
		score += lapsedScore
	}

	if score > maxPriorityScore {
		score = maxPriorityScore
	}

	return score
}
