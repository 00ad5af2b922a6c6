package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. If logger is nil, the default logger is used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *PostgresSessionStore) Create(ctx context.Context, session *store.GameSession) error {
	if session == nil {
		return fmt.Errorf("%w: session is nil", store.ErrInvalidEntity)
	}

	const query = `
		INSERT INTO game_sessions (
			id, deck_id, status, cards_reviewed, cards_correct,
			score, highest_encounter, started_at, ended_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := s.db.ExecContext(ctx, query,
		session.ID, session.DeckID, session.Status,
		session.CardsReviewed, session.CardsCorrect,
		session.Score, session.HighestEncounter,
		session.StartedAt, session.EndedAt,
	); err != nil {
		if IsUniqueViolation(err) {
			return store.NewStoreError("session", "create", "session already exists", MapError(err))
		}
		if IsForeignKeyViolation(err) {
			return store.NewStoreError("session", "create", "deck does not exist", store.ErrDeckNotFound)
		}
		return store.NewStoreError("session", "create", "failed to insert session", MapError(err))
	}

	s.logger.DebugContext(ctx, "game session recorded",
		slog.String("session_id", session.ID.String()),
		slog.String("deck_id", session.DeckID.String()))
	return nil
}

// Finalize implements store.SessionStore.Finalize
func (s *PostgresSessionStore) Finalize(ctx context.Context, session *store.GameSession) error {
	if session == nil {
		return fmt.Errorf("%w: session is nil", store.ErrInvalidEntity)
	}

	const query = `
		UPDATE game_sessions
		SET status            = $2,
		    cards_reviewed    = $3,
		    cards_correct     = $4,
		    score             = $5,
		    highest_encounter = $6,
		    ended_at          = $7
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		session.ID, session.Status,
		session.CardsReviewed, session.CardsCorrect,
		session.Score, session.HighestEncounter, session.EndedAt,
	)
	if err != nil {
		return store.NewStoreError("session", "finalize", "failed to update session", MapError(err))
	}
	if err := CheckRowsAffected(result, "game session"); err != nil {
		return store.ErrSessionNotFound
	}

	s.logger.DebugContext(ctx, "game session finalized",
		slog.String("session_id", session.ID.String()),
		slog.String("status", session.Status))
	return nil
}

// ListByDeck implements store.SessionStore.ListByDeck
func (s *PostgresSessionStore) ListByDeck(ctx context.Context, deckID uuid.UUID, limit int) ([]*store.GameSession, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `
		SELECT id, deck_id, status, cards_reviewed, cards_correct,
		       score, highest_encounter, started_at, ended_at
		FROM game_sessions
		WHERE deck_id = $1
		ORDER BY started_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, deckID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*store.GameSession
	for rows.Next() {
		var (
			sess    store.GameSession
			endedAt sql.NullTime
		)
		if err := rows.Scan(
			&sess.ID, &sess.DeckID, &sess.Status,
			&sess.CardsReviewed, &sess.CardsCorrect,
			&sess.Score, &sess.HighestEncounter,
			&sess.StartedAt, &endedAt,
		); err != nil {
			return nil, MapError(err)
		}
		if endedAt.Valid {
			ended := endedAt.Time
			sess.EndedAt = &ended
		}
		sessions = append(sessions, &sess)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return sessions, nil
}
