package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardReviewState(t *testing.T) {
	t.Parallel()

	state, err := NewCardReviewState(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2.5, state.EaseFactor)
	assert.True(t, state.IsLearning)
	assert.False(t, state.IsLapsed)
	assert.True(t, state.IsNew())
	assert.Nil(t, state.NextDueAt)

	_, err = NewCardReviewState(uuid.Nil)
	assert.ErrorIs(t, err, ErrEmptyStateCardID)
}

func TestCardReviewStateIsDue(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	state, err := NewCardReviewState(uuid.New())
	require.NoError(t, err)
	assert.True(t, state.IsDue(now), "nil NextDueAt means due now")

	future := now.Add(time.Hour)
	state.NextDueAt = &future
	assert.False(t, state.IsDue(now))
	assert.True(t, state.IsDue(future), "due exactly at the scheduled time")
	assert.True(t, state.IsDue(future.Add(time.Minute)))
}

func TestCardReviewStateAccuracy(t *testing.T) {
	t.Parallel()

	state, err := NewCardReviewState(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0.0, state.Accuracy(), "unreviewed card has no accuracy")

	state.TotalReviews = 4
	state.TotalCorrect = 3
	assert.InDelta(t, 75.0, state.Accuracy(), 1e-9)
}

func TestCardReviewStateClone(t *testing.T) {
	t.Parallel()

	state, err := NewCardReviewState(uuid.New())
	require.NoError(t, err)
	due := time.Now().UTC().Add(time.Hour)
	state.NextDueAt = &due

	clone := state.Clone()
	require.NotNil(t, clone.NextDueAt)

	// Mutating the clone's due pointer must not reach the original.
	*clone.NextDueAt = due.Add(24 * time.Hour)
	assert.Equal(t, due, *state.NextDueAt)
}
