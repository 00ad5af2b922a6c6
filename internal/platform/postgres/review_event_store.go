package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/store"
)

// PostgresReviewEventStore implements the store.ReviewEventStore interface
// using a PostgreSQL database as the storage backend. Events are
// append-only; there are no update or delete operations.
type PostgresReviewEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewEventStore creates a new PostgreSQL implementation of
// the ReviewEventStore interface. If logger is nil, the default logger is
// used.
func NewPostgresReviewEventStore(db store.DBTX, logger *slog.Logger) *PostgresReviewEventStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReviewEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_event_store")),
	}
}

// Ensure PostgresReviewEventStore implements store.ReviewEventStore interface
var _ store.ReviewEventStore = (*PostgresReviewEventStore)(nil)

// Record implements store.ReviewEventStore.Record
func (s *PostgresReviewEventStore) Record(ctx context.Context, event *store.ReviewEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", store.ErrInvalidEntity)
	}

	const query = `
		INSERT INTO review_events (card_id, deck_id, session_id, rating, damage, new_ease, new_interval, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	if _, err := s.db.ExecContext(ctx, query,
		event.CardID, event.DeckID, event.SessionID, string(event.Rating),
		event.Damage, event.NewEase, event.NewInterval,
	); err != nil {
		return MapError(err)
	}
	return nil
}

// ListRecent implements store.ReviewEventStore.ListRecent
func (s *PostgresReviewEventStore) ListRecent(ctx context.Context, deckID uuid.UUID, limit int) ([]*store.ReviewEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `
		SELECT card_id, deck_id, session_id, rating, damage, new_ease, new_interval, created_at
		FROM review_events
		WHERE deck_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, deckID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var events []*store.ReviewEvent
	for rows.Next() {
		var (
			event  store.ReviewEvent
			rating string
		)
		if err := rows.Scan(
			&event.CardID, &event.DeckID, &event.SessionID, &rating,
			&event.Damage, &event.NewEase, &event.NewInterval, &event.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		event.Rating = domain.Rating(rating)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	s.logger.DebugContext(ctx, "review events listed",
		slog.String("deck_id", deckID.String()),
		slog.Int("events", len(events)))
	return events, nil
}
