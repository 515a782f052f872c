package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath         string
	ServerPort     string
	LogLevel       string
	SessionTTL     time.Duration
	DefaultOvers   int
	DefaultWickets int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:     getEnv("DB_PATH", "file:cricket?mode=memory&cache=shared"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", constants.DefaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.DefaultOvers, err = getInt("DEFAULT_OVERS", domain.DefaultOvers); err != nil {
		return nil, err
	}
	if cfg.DefaultWickets, err = getInt("DEFAULT_WICKETS", domain.DefaultWicket); err != nil {
		return nil, err
	}

	if err := cfg.MatchDefaults().Validate(); err != nil {
		return nil, fmt.Errorf("invalid match defaults: %w", err)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("session_ttl", cfg.SessionTTL).
		Int("default_overs", cfg.DefaultOvers).
		Int("default_wickets", cfg.DefaultWickets).
		Msg("configuration loaded")

	return cfg, nil
}

// MatchDefaults are the settings a new match starts with unless the request
// overrides them.
func (c *Config) MatchDefaults() domain.MatchSettings {
	s := domain.DefaultSettings()
	s.TotalOvers = c.DefaultOvers
	s.MaxWickets = c.DefaultWickets
	return s
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

var Module = fx.Provide(Load)
