package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// the default logger is used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateDeck implements store.DeckStore.CreateDeck
// It inserts the deck row and all of its cards. Run it inside a
// transaction via WithTx so a failed card insert does not leave a partial
// deck behind.
func (s *PostgresDeckStore) CreateDeck(ctx context.Context, deck *domain.Deck, cards []*domain.Card) error {
	if deck == nil {
		return fmt.Errorf("%w: deck is nil", store.ErrInvalidEntity)
	}
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	deck.TotalCards = len(cards)
	tags, err := json.Marshal(deck.Tags)
	if err != nil {
		return fmt.Errorf("marshaling deck tags: %w", err)
	}

	const insertDeck = `
		INSERT INTO decks (id, name, total_cards, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.db.ExecContext(ctx, insertDeck,
		deck.ID, deck.Name, deck.TotalCards, tags, deck.CreatedAt, deck.UpdatedAt,
	); err != nil {
		if IsUniqueViolation(err) {
			return store.NewStoreError("deck", "create", "deck already exists", MapError(err))
		}
		return store.NewStoreError("deck", "create", "failed to insert deck", MapError(err))
	}

	if err := s.insertCards(ctx, deck.ID, cards); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("cards", len(cards)))
	return nil
}

// GetDeck implements store.DeckStore.GetDeck
func (s *PostgresDeckStore) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	const query = `
		SELECT id, name, total_cards, tags, created_at, updated_at
		FROM decks
		WHERE id = $1`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, MapError(err)
	}
	return deck, nil
}

// ListDecks implements store.DeckStore.ListDecks
func (s *PostgresDeckStore) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	const query = `
		SELECT id, name, total_cards, tags, created_at, updated_at
		FROM decks
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, MapError(err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return decks, nil
}

// GetCards implements store.DeckStore.GetCards
func (s *PostgresDeckStore) GetCards(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	if err := s.deckExists(ctx, deckID); err != nil {
		return nil, err
	}

	const query = `
		SELECT id, deck_id, front, back, tags, note_type, created_at, updated_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		var (
			card     domain.Card
			tags     []byte
			noteType sql.NullString
		)
		if err := rows.Scan(
			&card.ID, &card.DeckID, &card.Front, &card.Back,
			&tags, &noteType, &card.CreatedAt, &card.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &card.Tags); err != nil {
				return nil, fmt.Errorf("unmarshaling card tags: %w", err)
			}
		}
		card.NoteType = noteType.String
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

// AddCards implements store.DeckStore.AddCards
func (s *PostgresDeckStore) AddCards(ctx context.Context, deckID uuid.UUID, cards []*domain.Card) error {
	if err := s.deckExists(ctx, deckID); err != nil {
		return err
	}
	if len(cards) == 0 {
		return nil
	}

	if err := s.insertCards(ctx, deckID, cards); err != nil {
		return err
	}

	const bump = `
		UPDATE decks
		SET total_cards = total_cards + $2, updated_at = NOW()
		WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, bump, deckID, len(cards)); err != nil {
		return MapError(err)
	}

	s.logger.DebugContext(ctx, "cards added",
		slog.String("deck_id", deckID.String()),
		slog.Int("cards", len(cards)))
	return nil
}

func (s *PostgresDeckStore) insertCards(ctx context.Context, deckID uuid.UUID, cards []*domain.Card) error {
	const insertCard = `
		INSERT INTO cards (id, deck_id, front, back, tags, note_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, card := range cards {
		card.DeckID = deckID
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		tags, err := json.Marshal(card.Tags)
		if err != nil {
			return fmt.Errorf("marshaling card tags: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, insertCard,
			card.ID, card.DeckID, card.Front, card.Back, tags,
			card.NoteType, card.CreatedAt, card.UpdatedAt,
		); err != nil {
			if IsUniqueViolation(err) {
				return store.NewStoreError("card", "create", "card already exists", MapError(err))
			}
			if IsForeignKeyViolation(err) {
				return store.NewStoreError("card", "create", "deck does not exist", store.ErrDeckNotFound)
			}
			return store.NewStoreError("card", "create", "failed to insert card", MapError(err))
		}
	}
	return nil
}

func (s *PostgresDeckStore) deckExists(ctx context.Context, deckID uuid.UUID) error {
	const query = `SELECT 1 FROM decks WHERE id = $1`
	var one int
	if err := s.db.QueryRowContext(ctx, query, deckID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrDeckNotFound
		}
		return MapError(err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanDeck(row scanner) (*domain.Deck, error) {
	var (
		deck domain.Deck
		tags []byte
	)
	if err := row.Scan(
		&deck.ID, &deck.Name, &deck.TotalCards, &tags,
		&deck.CreatedAt, &deck.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &deck.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling deck tags: %w", err)
		}
	}
	return &deck, nil
}
