package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/store"
)

// DeckStats summarizes a deck's scheduling health for the deck overview
// screen.
type DeckStats struct {
	DeckID          uuid.UUID         `json:"deck_id"`
	DeckName        string            `json:"deck_name"`
	TotalCards      int               `json:"total_cards"`
	NewCards        int               `json:"new_cards"`
	LearningCards   int               `json:"learning_cards"`
	DueCards        int               `json:"due_cards"`
	GraduatedCards  int               `json:"graduated_cards"`
	LapsedCards     int               `json:"lapsed_cards"`
	MasteredCards   int               `json:"mastered_cards"`
	AverageEase     float64           `json:"average_ease"`
	AverageAccuracy float64           `json:"average_accuracy"`
	WeakCards       []*store.WeakCard `json:"weak_cards"`
}

// StatsService computes read-only deck statistics from persisted review
// state. It runs outside any game session and takes no session locks.
type StatsService struct {
	decks    store.DeckStore
	states   store.ReviewStateStore
	events   store.ReviewEventStore
	sessions store.SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewStatsService creates a StatsService. It panics if any collaborator
// is nil.
func NewStatsService(decks store.DeckStore, states store.ReviewStateStore, events store.ReviewEventStore, sessions store.SessionStore, logger *slog.Logger) *StatsService {
	if decks == nil {
		panic("NewStatsService: deck store is nil")
	}
	if states == nil {
		panic("NewStatsService: review state store is nil")
	}
	if events == nil {
		panic("NewStatsService: review event store is nil")
	}
	if sessions == nil {
		panic("NewStatsService: session store is nil")
	}
	if logger == nil {
		panic("NewStatsService: logger is nil")
	}
	return &StatsService{
		decks:    decks,
		states:   states,
		events:   events,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "stats_service")),
		now:      time.Now,
	}
}

// DeckStats aggregates the deck's review states into a summary. Cards
// that have never been reviewed count as new even though no state row
// exists for them yet.
func (s *StatsService) DeckStats(ctx context.Context, deckID uuid.UUID) (*DeckStats, error) {
	deck, err := s.decks.GetDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}
	states, err := s.states.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("loading review states: %w", err)
	}
	weak, err := s.states.GetWeakCards(ctx, deckID, 5)
	if err != nil {
		return nil, fmt.Errorf("loading weak cards: %w", err)
	}

	now := s.now()
	stats := &DeckStats{
		DeckID:     deck.ID,
		DeckName:   deck.Name,
		TotalCards: deck.TotalCards,
		WeakCards:  weak,
	}

	var easeSum, accSum float64
	var reviewed int
	for _, st := range states {
		switch {
		case st.IsNew():
			stats.NewCards++
		case st.IsLearning:
			stats.LearningCards++
		default:
			stats.GraduatedCards++
			if st.IsDue(now) {
				stats.DueCards++
			}
		}
		if st.IsLapsed {
			stats.LapsedCards++
		}
		if st.TotalReviews >= 5 && st.Accuracy() >= 80 {
			stats.MasteredCards++
		}
		if !st.IsNew() {
			reviewed++
			easeSum += st.EaseFactor
			accSum += st.Accuracy()
		}
	}
	// Cards with no state row at all are new by definition.
	if untracked := deck.TotalCards - len(states); untracked > 0 {
		stats.NewCards += untracked
	}
	if reviewed > 0 {
		stats.AverageEase = easeSum / float64(reviewed)
		stats.AverageAccuracy = accSum / float64(reviewed)
	}
	return stats, nil
}

// RecentSessions returns the most recent runs for a deck, newest first,
// including runs still marked active.
func (s *StatsService) RecentSessions(ctx context.Context, deckID uuid.UUID, limit int) ([]*store.GameSession, error) {
	if limit <= 0 {
		limit = 20
	}
	sessions, err := s.sessions.ListByDeck(ctx, deckID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	return sessions, nil
}

// RecentReviews returns the most recent review events for a deck, newest
// first.
func (s *StatsService) RecentReviews(ctx context.Context, deckID uuid.UUID, limit int) ([]*store.ReviewEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	events, err := s.events.ListRecent(ctx, deckID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading review events: %w", err)
	}
	return events, nil
}
