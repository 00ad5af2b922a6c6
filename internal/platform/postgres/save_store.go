package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/store"
)

// PostgresSaveStore implements the store.SaveStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSaveStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSaveStore creates a new PostgreSQL implementation of the
// SaveStore interface. If logger is nil, the default logger is used.
func NewPostgresSaveStore(db store.DBTX, logger *slog.Logger) *PostgresSaveStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSaveStore{
		db:     db,
		logger: logger.With(slog.String("component", "save_store")),
	}
}

// Ensure PostgresSaveStore implements store.SaveStore interface
var _ store.SaveStore = (*PostgresSaveStore)(nil)

// Create implements store.SaveStore.Create
func (s *PostgresSaveStore) Create(ctx context.Context, deckID uuid.UUID, name string, snapshot json.RawMessage) (uuid.UUID, error) {
	const query = `
		INSERT INTO game_saves (id, deck_id, name, snapshot, created_at)
		VALUES ($1, $2, $3, $4, NOW())`

	id := uuid.New()
	if _, err := s.db.ExecContext(ctx, query, id, deckID, name, []byte(snapshot)); err != nil {
		if IsForeignKeyViolation(err) {
			return uuid.Nil, store.NewStoreError("save", "create", "deck does not exist", store.ErrDeckNotFound)
		}
		return uuid.Nil, store.NewStoreError("save", "create", "failed to insert save", MapError(err))
	}

	s.logger.DebugContext(ctx, "game save created",
		slog.String("save_id", id.String()),
		slog.String("deck_id", deckID.String()))
	return id, nil
}

// Get implements store.SaveStore.Get
func (s *PostgresSaveStore) Get(ctx context.Context, id uuid.UUID) (*store.GameSave, error) {
	const query = `
		SELECT id, deck_id, name, snapshot, created_at
		FROM game_saves
		WHERE id = $1`

	var (
		save     store.GameSave
		snapshot []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&save.ID, &save.DeckID, &save.Name, &snapshot, &save.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSaveNotFound
		}
		return nil, MapError(err)
	}
	save.Snapshot = snapshot
	return &save, nil
}

// ListByDeck implements store.SaveStore.ListByDeck
func (s *PostgresSaveStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*store.GameSave, error) {
	const query = `
		SELECT id, deck_id, name, snapshot, created_at
		FROM game_saves
		WHERE deck_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var saves []*store.GameSave
	for rows.Next() {
		var (
			save     store.GameSave
			snapshot []byte
		)
		if err := rows.Scan(&save.ID, &save.DeckID, &save.Name, &snapshot, &save.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		save.Snapshot = snapshot
		saves = append(saves, &save)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return saves, nil
}

// Delete implements store.SaveStore.Delete
func (s *PostgresSaveStore) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM game_saves WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "game save"); err != nil {
		return store.ErrSaveNotFound
	}
	return nil
}
