package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/session"
)

// GameHandler handles the game loop API requests. Each deck has at most
// one live session; the session manager serializes all access to it.
type GameHandler struct {
	sessions  *session.Manager
	validator *validator.Validate
	logger    *slog.Logger
}

// NewGameHandler creates a new GameHandler with the given dependencies.
func NewGameHandler(sessions *session.Manager, logger *slog.Logger) *GameHandler {
	if sessions == nil {
		panic("NewGameHandler: session manager is nil")
	}
	if logger == nil {
		panic("NewGameHandler: logger is nil")
	}
	return &GameHandler{
		sessions:  sessions,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "game_handler")),
	}
}

// sessionKey derives the manager key for a deck. One live game per deck.
func sessionKey(deckID uuid.UUID) string {
	return deckID.String()
}

// NewGame handles POST /game/{deckID}/new.
func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	var view *session.TurnView
	err = h.sessions.With(sessionKey(deckID), func(o *session.Orchestrator) error {
		var err error
		view, err = o.NewGame(r.Context(), deckID)
		return err
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, view)
}

// Status handles GET /game/{deckID}/status.
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	var view *session.TurnView
	err = h.sessions.WithExisting(sessionKey(deckID), func(o *session.Orchestrator) error {
		var err error
		view, err = o.Status()
		return err
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, view)
}

// Reveal handles POST /game/{deckID}/reveal.
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	var view *session.TurnView
	err = h.sessions.WithExisting(sessionKey(deckID), func(o *session.Orchestrator) error {
		var err error
		view, err = o.Reveal()
		return err
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, view)
}

// Answer handles POST /game/{deckID}/answer.
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	var req AnswerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error(), err)
		return
	}
	rating, err := domain.ParseRating(req.Rating)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Unknown rating: "+req.Rating, err)
		return
	}

	var result *session.AnswerResult
	err = h.sessions.WithExisting(sessionKey(deckID), func(o *session.Orchestrator) error {
		var err error
		result, err = o.Answer(r.Context(), rating)
		return err
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, result)
}

// UsePowerup handles POST /game/{deckID}/powerup.
func (h *GameHandler) UsePowerup(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	var req PowerupRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error(), err)
		return
	}

	var result *session.PowerupResult
	err = h.sessions.WithExisting(sessionKey(deckID), func(o *session.Orchestrator) error {
		var err error
		result, err = o.UsePowerup(r.Context(), req.ItemID)
		return err
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, result)
}

// Save handles POST /game/{deckID}/save.
func (h *GameHandler) Save(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	var req SaveRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error(), err)
		return
	}

	var saveID uuid.UUID
	err = h.sessions.WithExisting(sessionKey(deckID), func(o *session.Orchestrator) error {
		var err error
		saveID, err = o.Save(r.Context(), req.Name)
		return err
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, SaveResponse{SaveID: saveID})
}

// Load handles POST /game/{deckID}/load.
func (h *GameHandler) Load(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathUUID(r, "deckID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	var req LoadRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error(), err)
		return
	}

	var view *session.TurnView
	err = h.sessions.With(sessionKey(deckID), func(o *session.Orchestrator) error {
		var err error
		view, err = o.Load(r.Context(), req.SaveID)
		return err
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, view)
}
