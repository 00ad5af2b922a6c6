package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The database URL has no default, so every test sets it. t.Setenv
// precludes t.Parallel here.

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DECKRAID_DATABASE_URL", "postgres://localhost:5432/deckraid_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/deckraid_test", cfg.Database.URL)

	assert.Equal(t, 100, cfg.Game.PlayerMaxHP)
	assert.Equal(t, 20, cfg.Game.PlayerBaseDamage)
	assert.Equal(t, 1, cfg.Game.PlayerStartingLevel)
	assert.Equal(t, 10, cfg.Game.TotalEncounters)
	assert.InDelta(t, 0.2, cfg.Game.DifficultyScale, 0.001)
	assert.Equal(t, 20, cfg.Game.NewCardsPerSession)
	assert.InDelta(t, 70.0, cfg.Game.LootDropChance, 0.001)

	assert.Empty(t, cfg.LLM.GeminiAPIKey, "generation is off by default")
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 2, cfg.LLM.RetryDelaySeconds)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("DECKRAID_DATABASE_URL", "postgres://localhost:5432/deckraid_test")
	t.Setenv("DECKRAID_SERVER_PORT", "9999")
	t.Setenv("DECKRAID_SERVER_LOG_LEVEL", "debug")
	t.Setenv("DECKRAID_GAME_TOTAL_ENCOUNTERS", "5")
	t.Setenv("DECKRAID_GAME_LOOT_DROP_CHANCE", "42.5")
	t.Setenv("DECKRAID_LLM_GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5, cfg.Game.TotalEncounters)
	assert.InDelta(t, 42.5, cfg.Game.LootDropChance, 0.001)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing database url",
			env:  map[string]string{},
		},
		{
			name: "port out of range",
			env: map[string]string{
				"DECKRAID_DATABASE_URL": "postgres://localhost/db",
				"DECKRAID_SERVER_PORT":  "70000",
			},
		},
		{
			name: "unknown log level",
			env: map[string]string{
				"DECKRAID_DATABASE_URL":     "postgres://localhost/db",
				"DECKRAID_SERVER_LOG_LEVEL": "verbose",
			},
		},
		{
			name: "zero player hp",
			env: map[string]string{
				"DECKRAID_DATABASE_URL":       "postgres://localhost/db",
				"DECKRAID_GAME_PLAYER_MAX_HP": "0",
			},
		},
		{
			name: "loot chance above 100",
			env: map[string]string{
				"DECKRAID_DATABASE_URL":          "postgres://localhost/db",
				"DECKRAID_GAME_LOOT_DROP_CHANCE": "101",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
