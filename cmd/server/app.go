package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deckraid/deckraid-api/internal/api"
	"github.com/deckraid/deckraid-api/internal/combat"
	"github.com/deckraid/deckraid-api/internal/config"
	"github.com/deckraid/deckraid-api/internal/domain/srs"
	"github.com/deckraid/deckraid-api/internal/generation"
	"github.com/deckraid/deckraid-api/internal/platform/gemini"
	"github.com/deckraid/deckraid-api/internal/platform/postgres"
	"github.com/deckraid/deckraid-api/internal/session"
)

// application wires the whole service together: database, stores, game
// services, and the HTTP router.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	router chi.Router
}

// newApplication builds the dependency graph. Card generation is optional:
// without an API key the endpoint reports the feature as unavailable and
// everything else works normally.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	deckStore := postgres.NewPostgresDeckStore(db, logger)
	stateStore := postgres.NewPostgresReviewStateStore(db, logger)
	saveStore := postgres.NewPostgresSaveStore(db, logger)
	eventStore := postgres.NewPostgresReviewEventStore(db, logger)
	sessionStore := postgres.NewPostgresSessionStore(db, logger)

	srsService := srs.NewDefaultService()

	// Each orchestrator gets its own rand source: the manager serializes
	// calls within a session but separate sessions run concurrently.
	manager := session.NewManager(func() *session.Orchestrator {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		resolver := combat.NewResolver(combat.Config{
			BaseDamage:      cfg.Game.PlayerBaseDamage,
			DifficultyScale: cfg.Game.DifficultyScale,
			LootDropChance:  cfg.Game.LootDropChance,
		}, rng, logger)

		return session.NewOrchestrator(session.OrchestratorConfig{
			Game:     cfg.Game,
			SRS:      srsService,
			Resolver: resolver,
			Decks:    deckStore,
			States:   stateStore,
			Saves:    saveStore,
			Events:   eventStore,
			Sessions: sessionStore,
			RNG:      rng,
			Logger:   logger,
		})
	})

	var generator generation.Generator
	if cfg.LLM.GeminiAPIKey != "" {
		g, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("initializing card generator: %w", err)
		}
		generator = g
		logger.Info("card generation enabled", slog.String("model", cfg.LLM.Model))
	} else {
		logger.Info("card generation disabled: no API key configured")
	}

	statsService := session.NewStatsService(deckStore, stateStore, eventStore, sessionStore, logger)

	deckHandler := api.NewDeckHandler(db, deckStore, saveStore, statsService, generator, logger)
	gameHandler := api.NewGameHandler(manager, logger)

	return &application{
		cfg:    cfg,
		logger: logger,
		db:     db,
		router: api.NewRouter(deckHandler, gameHandler, logger),
	}, nil
}

func (a *application) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("error closing database", slog.Any("error", err))
	}
}
