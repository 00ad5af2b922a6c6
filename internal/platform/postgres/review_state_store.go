package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/store"
)

// PostgresReviewStateStore implements the store.ReviewStateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a new PostgreSQL implementation of
// the ReviewStateStore interface. If logger is nil, the default logger is
// used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

// Ensure PostgresReviewStateStore implements store.ReviewStateStore interface
var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

// WithTx implements store.ReviewStateStore.WithTx
func (s *PostgresReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return &PostgresReviewStateStore{
		db:     tx,
		logger: s.logger,
	}
}

const reviewStateColumns = `
	card_id, ease_factor, interval_days, repetitions,
	last_reviewed_at, next_due_at,
	total_reviews, total_correct, total_incorrect, total_hard,
	is_learning, is_lapsed, last_rating, created_at, updated_at`

// ListByDeck implements store.ReviewStateStore.ListByDeck
func (s *PostgresReviewStateStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.CardReviewState, error) {
	query := `
		SELECT ` + reviewStateColumns + `
		FROM card_review_states
		WHERE deck_id = $1`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var states []*domain.CardReviewState
	for rows.Next() {
		state, err := scanReviewState(rows)
		if err != nil {
			return nil, MapError(err)
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return states, nil
}

// Upsert implements store.ReviewStateStore.Upsert
func (s *PostgresReviewStateStore) Upsert(ctx context.Context, deckID uuid.UUID, state *domain.CardReviewState) error {
	if state == nil {
		return fmt.Errorf("%w: review state is nil", store.ErrInvalidEntity)
	}
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		INSERT INTO card_review_states (
			card_id, deck_id, ease_factor, interval_days, repetitions,
			last_reviewed_at, next_due_at,
			total_reviews, total_correct, total_incorrect, total_hard,
			is_learning, is_lapsed, last_rating, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (card_id) DO UPDATE SET
			ease_factor      = EXCLUDED.ease_factor,
			interval_days    = EXCLUDED.interval_days,
			repetitions      = EXCLUDED.repetitions,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_due_at      = EXCLUDED.next_due_at,
			total_reviews    = EXCLUDED.total_reviews,
			total_correct    = EXCLUDED.total_correct,
			total_incorrect  = EXCLUDED.total_incorrect,
			total_hard       = EXCLUDED.total_hard,
			is_learning      = EXCLUDED.is_learning,
			is_lapsed        = EXCLUDED.is_lapsed,
			last_rating      = EXCLUDED.last_rating,
			updated_at       = EXCLUDED.updated_at`

	var lastReviewed sql.NullTime
	if !state.LastReviewedAt.IsZero() {
		lastReviewed = sql.NullTime{Time: state.LastReviewedAt, Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, query,
		state.CardID, deckID, state.EaseFactor, state.Interval, state.Repetitions,
		lastReviewed, state.NextDueAt,
		state.TotalReviews, state.TotalCorrect, state.TotalIncorrect, state.TotalHard,
		state.IsLearning, state.IsLapsed, string(state.LastRating),
		state.CreatedAt, state.UpdatedAt,
	); err != nil {
		if IsForeignKeyViolation(err) {
			return store.NewStoreError("review_state", "upsert", "card or deck does not exist", store.ErrCardNotFound)
		}
		return store.NewStoreError("review_state", "upsert", "failed to upsert review state", MapError(err))
	}
	return nil
}

// UpsertAll implements store.ReviewStateStore.UpsertAll
func (s *PostgresReviewStateStore) UpsertAll(ctx context.Context, deckID uuid.UUID, states []*domain.CardReviewState) error {
	for _, state := range states {
		if err := s.Upsert(ctx, deckID, state); err != nil {
			return err
		}
	}
	s.logger.DebugContext(ctx, "review states flushed",
		slog.String("deck_id", deckID.String()),
		slog.Int("states", len(states)))
	return nil
}

// GetWeakCards implements store.ReviewStateStore.GetWeakCards
func (s *PostgresReviewStateStore) GetWeakCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*store.WeakCard, error) {
	if limit <= 0 {
		limit = 5
	}

	const query = `
		SELECT c.id, c.front,
		       rs.total_correct::float / rs.total_reviews * 100 AS accuracy,
		       rs.total_reviews, rs.total_incorrect
		FROM card_review_states rs
		JOIN cards c ON c.id = rs.card_id
		WHERE rs.deck_id = $1
		  AND rs.total_reviews >= 3
		  AND rs.total_correct::float / rs.total_reviews * 100 <= 60
		ORDER BY accuracy ASC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, deckID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var weak []*store.WeakCard
	for rows.Next() {
		var w store.WeakCard
		if err := rows.Scan(&w.CardID, &w.Front, &w.Accuracy, &w.TotalReviews, &w.TotalIncorrect); err != nil {
			return nil, MapError(err)
		}
		weak = append(weak, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return weak, nil
}

func scanReviewState(row scanner) (*domain.CardReviewState, error) {
	var (
		state        domain.CardReviewState
		lastReviewed sql.NullTime
		nextDue      sql.NullTime
		lastRating   sql.NullString
	)
	if err := row.Scan(
		&state.CardID, &state.EaseFactor, &state.Interval, &state.Repetitions,
		&lastReviewed, &nextDue,
		&state.TotalReviews, &state.TotalCorrect, &state.TotalIncorrect, &state.TotalHard,
		&state.IsLearning, &state.IsLapsed, &lastRating,
		&state.CreatedAt, &state.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		state.LastReviewedAt = lastReviewed.Time
	}
	if nextDue.Valid {
		due := nextDue.Time
		state.NextDueAt = &due
	}
	state.LastRating = domain.Rating(lastRating.String)
	return &state, nil
}
