package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deckraid/deckraid-api/internal/platform/logger"
)

// NewRouter assembles the HTTP routes for the API.
func NewRouter(decks *DeckHandler, game *GameHandler, log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Post("/", decks.CreateDeck)
			r.Get("/", decks.ListDecks)
			r.Route("/{deckID}", func(r chi.Router) {
				r.Get("/", decks.GetDeck)
				r.Get("/stats", decks.GetStats)
				r.Get("/reviews", decks.GetRecentReviews)
				r.Get("/sessions", decks.GetSessions)
				r.Get("/saves", decks.ListSaves)
				r.Post("/generate", decks.GenerateCards)
			})
		})

		r.Delete("/saves/{saveID}", decks.DeleteSave)

		r.Route("/game/{deckID}", func(r chi.Router) {
			r.Post("/new", game.NewGame)
			r.Get("/status", game.Status)
			r.Post("/reveal", game.Reveal)
			r.Post("/answer", game.Answer)
			r.Post("/powerup", game.UsePowerup)
			r.Post("/save", game.Save)
			r.Post("/load", game.Load)
		})
	})

	return r
}

// requestLogger attaches a request-scoped logger carrying the request ID to
// the context, so lower layers (store transactions, services) log with the
// same correlation ID via logger.FromContext.
func requestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reqLog := base.With(slog.String("request_id", middleware.GetReqID(ctx)))
			next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, reqLog)))
		})
	}
}
