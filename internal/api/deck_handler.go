package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/generation"
	"github.com/deckraid/deckraid-api/internal/session"
	"github.com/deckraid/deckraid-api/internal/store"
)

// DeckHandler handles deck management API requests: creating and listing
// decks, deck statistics, save management, and LLM card generation.
type DeckHandler struct {
	db        *sql.DB
	decks     store.DeckStore
	saves     store.SaveStore
	stats     *session.StatsService
	generator generation.Generator
	validator *validator.Validate
	logger    *slog.Logger
}

// NewDeckHandler creates a new DeckHandler with the given dependencies.
// generator may be nil, in which case the generation endpoint reports the
// feature as unavailable.
func NewDeckHandler(
	db *sql.DB,
	decks store.DeckStore,
	saves store.SaveStore,
	stats *session.StatsService,
	generator generation.Generator,
	logger *slog.Logger,
) *DeckHandler {
	if db == nil {
		panic("NewDeckHandler: db is nil")
	}
	if decks == nil {
		panic("NewDeckHandler: deck store is nil")
	}
	if saves == nil {
		panic("NewDeckHandler: save store is nil")
	}
	if stats == nil {
		panic("NewDeckHandler: stats service is nil")
	}
	if logger == nil {
		panic("NewDeckHandler: logger is nil")
	}
	return &DeckHandler{
		db:        db,
		decks:     decks,
		saves:     saves,
		stats:     stats,
		generator: generator,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /decks.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error(), err)
		return
	}

	deck, err := domain.NewDeck(req.Name, req.Tags)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid deck data: "+err.Error(), err)
		return
	}
	cards := make([]*domain.Card, 0, len(req.Cards))
	for _, payload := range req.Cards {
		card, err := domain.NewCard(deck.ID, payload.Front, payload.Back, payload.Tags)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid card data: "+err.Error(), err)
			return
		}
		cards = append(cards, card)
	}

	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		return h.decks.WithTx(tx).CreateDeck(ctx, deck, cards)
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("cards", len(cards)))
	RespondWithJSON(w, r, http.StatusCreated, NewDeckResponse(deck))
}

// ListDecks handles GET /decks.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.ListDecks(r.Context())
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	out := make([]DeckResponse, 0, len(decks))
	for _, deck := range decks {
		out = append(out, NewDeckResponse(deck))
	}
	RespondWithJSON(w, r, http.StatusOK, out)
}

// GetDeck handles GET /decks/{deckID}.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	deck, err := h.decks.GetDeck(r.Context(), deckID)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, NewDeckResponse(deck))
}

// GetStats handles GET /decks/{deckID}/stats.
func (h *DeckHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	stats, err := h.stats.DeckStats(r.Context(), deckID)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetRecentReviews handles GET /decks/{deckID}/reviews.
func (h *DeckHandler) GetRecentReviews(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			RespondWithError(w, r, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
	}
	events, err := h.stats.RecentReviews(r.Context(), deckID, limit)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, events)
}

// GetSessions handles GET /decks/{deckID}/sessions.
func (h *DeckHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			RespondWithError(w, r, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
	}
	sessions, err := h.stats.RecentSessions(r.Context(), deckID, limit)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, sessions)
}

// GenerateCards handles POST /decks/{deckID}/generate.
func (h *DeckHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		RespondWithError(w, r, http.StatusServiceUnavailable,
			"Card generation is not configured on this server", nil)
		return
	}

	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	var req GenerateCardsRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error(), err)
		return
	}

	// Confirm the deck exists before spending an LLM call on it.
	if _, err := h.decks.GetDeck(r.Context(), deckID); err != nil {
		respondMappedError(w, r, err)
		return
	}

	cards, err := h.generator.GenerateCards(r.Context(), req.Topic, deckID, req.Count)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		return h.decks.WithTx(tx).AddCards(ctx, deckID, cards)
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "cards generated",
		slog.String("deck_id", deckID.String()),
		slog.String("topic", req.Topic),
		slog.Int("cards", len(cards)))
	RespondWithJSON(w, r, http.StatusCreated, GenerateCardsResponse{
		DeckID:     deckID,
		CardsAdded: len(cards),
	})
}

// ListSaves handles GET /decks/{deckID}/saves.
func (h *DeckHandler) ListSaves(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	saves, err := h.saves.ListByDeck(r.Context(), deckID)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	out := make([]SaveSummary, 0, len(saves))
	for _, save := range saves {
		out = append(out, SaveSummary{
			ID:        save.ID,
			DeckID:    save.DeckID,
			Name:      save.Name,
			CreatedAt: save.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	RespondWithJSON(w, r, http.StatusOK, out)
}

// DeleteSave handles DELETE /saves/{saveID}.
func (h *DeckHandler) DeleteSave(w http.ResponseWriter, r *http.Request) {
	saveID, err := getPathUUID(r, "saveID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.saves.Delete(r.Context(), saveID); err != nil {
		respondMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
