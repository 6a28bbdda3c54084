package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HERDFEED_PORT", "HERDFEED_LOG_LEVEL", "HERDFEED_CATALOG_PATH", "HERDFEED_DEFAULT_MODE"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level info, got %s", cfg.Log.Level)
	}
	if cfg.Ration.DefaultMode != "fixed" {
		t.Errorf("Expected default mode fixed, got %s", cfg.Ration.DefaultMode)
	}
	if cfg.Ration.CatalogPath != "" {
		t.Errorf("Expected no catalog path, got %s", cfg.Ration.CatalogPath)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even when empty
	for _, key := range []string{"HERDFEED_PORT", "HERDFEED_LOG_LEVEL", "HERDFEED_DEFAULT_MODE"} {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range []string{"HERDFEED_PORT", "HERDFEED_LOG_LEVEL", "HERDFEED_DEFAULT_MODE"} {
			os.Unsetenv(key)
		}
	})

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "HERDFEED_PORT=9090\nHERDFEED_LOG_LEVEL=debug\nHERDFEED_DEFAULT_MODE=gap\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Log.Level != "debug" || cfg.Ration.DefaultMode != "gap" {
		t.Errorf("Expected env file values to apply, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			Log:    LogConfig{Level: "info"},
			Ration: RationConfig{DefaultMode: "fixed"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}

	testCases := []struct {
		name        string
		modify      func(c *Config)
		expectError string
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }, "HERDFEED_PORT must be provided"},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }, "HERDFEED_PORT must be a port number"},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, "HERDFEED_PORT must be a port number"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "HERDFEED_LOG_LEVEL must be one of"},
		{"bad mode", func(c *Config) { c.Ration.DefaultMode = "solver" }, "HERDFEED_DEFAULT_MODE: unknown evaluation mode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}

	var nilConfig *Config
	if err := nilConfig.Validate(); err == nil {
		t.Error("Expected error for nil config")
	}
}
