package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/store"
)

func TestDeckStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	deck, err := domain.NewDeck("algorithms", nil)
	require.NoError(t, err)
	deck.TotalCards = 5

	learning := &domain.CardReviewState{
		CardID: uuid.New(), EaseFactor: 2.3, IsLearning: true,
		TotalReviews: 2, TotalCorrect: 1,
	}
	dueSoonTime := now.Add(-time.Hour)
	due := &domain.CardReviewState{
		CardID: uuid.New(), EaseFactor: 2.5, Interval: 3,
		TotalReviews: 4, TotalCorrect: 4, NextDueAt: &dueSoonTime,
	}
	futureTime := now.Add(72 * time.Hour)
	graduated := &domain.CardReviewState{
		CardID: uuid.New(), EaseFactor: 2.7, Interval: 6,
		TotalReviews: 5, TotalCorrect: 4, NextDueAt: &futureTime,
	}
	lapsed := &domain.CardReviewState{
		CardID: uuid.New(), EaseFactor: 2.1, IsLearning: true, IsLapsed: true,
		TotalReviews: 6, TotalCorrect: 2,
	}
	// Fifth card has no state row: it counts as new.

	states := newFakeStateStore()
	for _, st := range []*domain.CardReviewState{learning, due, graduated, lapsed} {
		require.NoError(t, states.Upsert(ctx, deck.ID, st))
	}

	svc := NewStatsService(
		&fakeDeckStore{deck: deck},
		states,
		&fakeEventStore{},
		newFakeSessionStore(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	svc.now = func() time.Time { return now }

	stats, err := svc.DeckStats(ctx, deck.ID)
	require.NoError(t, err)

	assert.Equal(t, deck.ID, stats.DeckID)
	assert.Equal(t, "algorithms", stats.DeckName)
	assert.Equal(t, 5, stats.TotalCards)
	assert.Equal(t, 1, stats.NewCards, "the untracked card is new")
	assert.Equal(t, 2, stats.LearningCards)
	assert.Equal(t, 2, stats.GraduatedCards)
	assert.Equal(t, 1, stats.DueCards)
	assert.Equal(t, 1, stats.LapsedCards)
	assert.Equal(t, 1, stats.MasteredCards, "only the 80%-over-5-reviews card qualifies")

	// Averages cover the four reviewed cards only.
	assert.InDelta(t, (2.3+2.5+2.7+2.1)/4, stats.AverageEase, 0.001)
	assert.InDelta(t, (50.0+100.0+80.0+100.0/3)/4, stats.AverageAccuracy, 0.001)
}

func TestDeckStats_UnknownDeck(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(
		&fakeDeckStore{},
		newFakeStateStore(),
		&fakeEventStore{},
		newFakeSessionStore(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	_, err := svc.DeckStats(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestRecentReviews_DefaultsLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	events := &fakeEventStore{}
	require.NoError(t, events.Record(ctx, &store.ReviewEvent{
		CardID: uuid.New(), Rating: domain.RatingGood, Damage: 18,
	}))

	svc := NewStatsService(
		&fakeDeckStore{},
		newFakeStateStore(),
		events,
		newFakeSessionStore(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	got, err := svc.RecentReviews(ctx, uuid.New(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.RatingGood, got[0].Rating)
}

func TestRecentSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	deckID := uuid.New()

	sessions := newFakeSessionStore()
	ended := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, sessions.Create(ctx, &store.GameSession{
		ID: uuid.New(), DeckID: deckID, Status: "won",
		CardsReviewed: 12, CardsCorrect: 10, Score: 900,
		HighestEncounter: 10, StartedAt: ended.Add(-20 * time.Minute), EndedAt: &ended,
	}))
	require.NoError(t, sessions.Create(ctx, &store.GameSession{
		ID: uuid.New(), DeckID: uuid.New(), Status: "active",
		StartedAt: ended,
	}))

	svc := NewStatsService(
		&fakeDeckStore{},
		newFakeStateStore(),
		&fakeEventStore{},
		sessions,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	got, err := svc.RecentSessions(ctx, deckID, 0)
	require.NoError(t, err)
	require.Len(t, got, 1, "other decks' runs are excluded")
	assert.Equal(t, "won", got[0].Status)
	assert.Equal(t, 900, got[0].Score)
}
