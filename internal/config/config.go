package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"crewhunt/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	PlayersPerGame      int
	ImpostersPerGame    int
	PlayerSpeed         float64
	StrikeRadius        float64
	DiscoveryRadius     float64
	TickRateHz          int
	BroadcastEveryTicks int
	Seed                int64
	RoomCodeLength      int
	StaleGameTimeout    time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults.
// Variables from the file named by ENV_FILE (default ".env") are loaded
// first; variables already set in the environment win.
func Load() (*Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	defaults := domain.DefaultSettings()
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			PlayersPerGame:      getEnvInt("PLAYERS_PER_GAME", defaults.Capacity),
			ImpostersPerGame:    getEnvInt("IMPOSTERS_PER_GAME", defaults.Imposters),
			PlayerSpeed:         getEnvFloat("PLAYER_SPEED", defaults.PlayerSpeed),
			StrikeRadius:        getEnvFloat("STRIKE_RADIUS", defaults.StrikeRadius),
			DiscoveryRadius:     getEnvFloat("DISCOVERY_RADIUS", defaults.DiscoveryRadius),
			TickRateHz:          getEnvInt("TICK_RATE_HZ", 20),
			BroadcastEveryTicks: getEnvInt("BROADCAST_EVERY_TICKS", 2),
			Seed:                int64(getEnvInt("GAME_SEED", 0)),
			RoomCodeLength:      getEnvInt("ROOM_CODE_LENGTH", 6),
			StaleGameTimeout:    time.Duration(getEnvInt("STALE_GAME_TIMEOUT_MINUTES", 120)) * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GameSettings converts the game configuration into world settings
func (c *Config) GameSettings() domain.Settings {
	settings := domain.DefaultSettings()
	settings.Capacity = c.Game.PlayersPerGame
	settings.Imposters = c.Game.ImpostersPerGame
	settings.PlayerSpeed = c.Game.PlayerSpeed
	settings.StrikeRadius = c.Game.StrikeRadius
	settings.DiscoveryRadius = c.Game.DiscoveryRadius
	return settings
}

// TickInterval returns the simulation tick period, zero if ticking is disabled
func (c *Config) TickInterval() time.Duration {
	if c.Game.TickRateHz <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Game.TickRateHz)
}

// loadEnvFile loads variables from path; a missing file is not an error
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat returns an environment variable as a float or a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
