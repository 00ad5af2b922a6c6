package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckraid/deckraid-api/internal/domain"
)

func TestPriorityScore(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	due := func(daysAgo int) *time.Time {
		ts := now.AddDate(0, 0, -daysAgo)
		return &ts
	}

	testCases := []struct {
		name     string
		state    func(t *testing.T) *domain.CardReviewState
		expected float64
	}{
		{
			name: "new card in learning",
			state: func(t *testing.T) *domain.CardReviewState {
				state, err := domain.NewCardReviewState(uuid.New())
				require.NoError(t, err)
				return state
			},
			// new (20) + learning (15); nil NextDueAt contributes no
			// overdue days
			expected: 35,
		},
		{
			name: "graduated card three days overdue",
			state: func(t *testing.T) *domain.CardReviewState {
				state, err := domain.NewCardReviewState(uuid.New())
				require.NoError(t, err)
				state.IsLearning = false
				state.TotalReviews = 2
				state.TotalCorrect = 2
				state.NextDueAt = due(3)
				return state
			},
			expected: 15,
		},
		{
			name: "overdue score is capped",
			state: func(t *testing.T) *domain.CardReviewState {
				state, err := domain.NewCardReviewState(uuid.New())
				require.NoError(t, err)
				state.IsLearning = false
				state.TotalReviews = 2
				state.TotalCorrect = 2
				state.NextDueAt = due(365)
				return state
			},
			expected: 50,
		},
		{
			name: "lapsed low-accuracy card stacks signals",
			state: func(t *testing.T) *domain.CardReviewState {
				state, err := domain.NewCardReviewState(uuid.New())
				require.NoError(t, err)
				state.IsLapsed = true
				state.TotalReviews = 5
				state.TotalCorrect = 1 // 20% accuracy
				state.NextDueAt = due(2)
				return state
			},
			// overdue (10) + low accuracy (20) + learning (15) + lapsed (25)
			expected: 70,
		},
		{
			name: "total score is capped at 100",
			state: func(t *testing.T) *domain.CardReviewState {
				state, err := domain.NewCardReviewState(uuid.New())
				require.NoError(t, err)
				state.IsLapsed = true
				state.TotalReviews = 10
				state.TotalCorrect = 0
				state.NextDueAt = due(30)
				return state
			},
			expected: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			score := PriorityScore(tc.state(t), now)
			assert.InDelta(t, tc.expected, score, 1e-9)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}
