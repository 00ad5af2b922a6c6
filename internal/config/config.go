package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Game     GameConfig     `mapstructure:"game"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// GameConfig contains the balance parameters for the battle loop and card
// selection. Defaults match the shipped game balance; deployments tune them
// without code changes.
type GameConfig struct {
	PlayerMaxHP         int     `mapstructure:"player_max_hp"         validate:"required,gt=0"`
	PlayerBaseDamage    int     `mapstructure:"player_base_damage"    validate:"required,gt=0"`
	PlayerStartingLevel int     `mapstructure:"player_starting_level" validate:"required,gte=1"`
	TotalEncounters     int     `mapstructure:"total_encounters"      validate:"required,gt=0"`
	DifficultyScale     float64 `mapstructure:"difficulty_scale"      validate:"gte=0"`
	NewCardsPerSession  int     `mapstructure:"new_cards_per_session" validate:"required,gt=0"`
	LootDropChance      float64 `mapstructure:"loot_drop_chance"      validate:"gte=0,lte=100"`
}

// LLMConfig contains settings for the optional card generation integration.
// GeminiAPIKey may be empty, in which case generation endpoints are disabled.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	Model             string `mapstructure:"model"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}
