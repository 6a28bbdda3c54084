package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/npcunard/herdfeed/pkg/domain/entities"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Ration RationConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// RationConfig holds evaluation defaults.
type RationConfig struct {
	// CatalogPath optionally points at a feed catalog CSV loaded at startup.
	CatalogPath string
	DefaultMode string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("HERDFEED_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("HERDFEED_LOG_LEVEL", "info"),
		},
		Ration: RationConfig{
			CatalogPath: os.Getenv("HERDFEED_CATALOG_PATH"),
			DefaultMode: getenvWithDefault("HERDFEED_DEFAULT_MODE", entities.FixedIntake.String()),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that configuration fields are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("HERDFEED_PORT must be provided")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("HERDFEED_PORT must be a port number, got %q", c.Server.Port)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("HERDFEED_LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if _, err := entities.ParseEvaluationMode(c.Ration.DefaultMode); err != nil {
		return fmt.Errorf("HERDFEED_DEFAULT_MODE: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
