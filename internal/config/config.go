// Package config loads process configuration from a .env file and the
// environment. CLI flags override these values at the command layer.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the environment-sourced configuration.
type Config struct {
	// Token is the Clockify API token.
	Token string `env:"TOKEN"`
	// BaseURL is the Clockify API endpoint.
	BaseURL string `env:"CLOCKIFY_API_URL" env-default:"https://global.api.clockify.me/"`
	// SettingsFile is the optional per-user override file.
	SettingsFile string `env:"SETTINGS_FILE" env-default:".settings.json"`
	// HolidaysFile overrides the embedded public-holiday calendar.
	HolidaysFile string `env:"HOLIDAYS_FILE"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" env-default:"warn"`
	// LogOutput is an optional log file path; empty logs to stderr.
	LogOutput string `env:"LOG_OUTPUT"`
	// SnapshotDir is where --debug payload dumps are written.
	SnapshotDir string `env:"SNAPSHOT_DIR" env-default:"snapshots"`
}

// Load reads configuration from ./.env when present, else from the
// environment alone. Priority: ENV > .env > defaults.
func Load() (Config, error) {
	var cfg Config

	const envFile = ".env"
	if _, err := os.Stat(envFile); err == nil {
		if err := cleanenv.ReadConfig(envFile, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", envFile, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	return cfg, nil
}
