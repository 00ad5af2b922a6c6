package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/deckraid/deckraid-api/internal/config"
)

// migrationsDir is the path to the goose SQL migrations, relative to the
// working directory the server is launched from.
const migrationsDir = "migrations"

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level without exiting; the error is returned to
// main, which owns process exit.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes a goose migration command against the configured
// database.
func runMigrations(cfg *config.Config, command string) error {
	goose.SetLogger(&slogGooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	logger := slog.Default().With(slog.String("component", "migrations"))

	db, err := openDatabase(context.Background(), cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	logger.Info("running migration command",
		slog.String("command", command),
		slog.String("dir", migrationsDir))

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "reset":
		err = goose.Reset(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q (expected up, down, reset, or status)", command)
	}
	if err != nil {
		return fmt.Errorf("migration command %q: %w", command, err)
	}

	logVersion(db, logger)
	return nil
}

func logVersion(db *sql.DB, logger *slog.Logger) {
	version, err := goose.GetDBVersion(db)
	if err != nil {
		logger.Warn("could not read migration version", slog.Any("error", err))
		return
	}
	logger.Info("database schema version", slog.Int64("version", version))
}
