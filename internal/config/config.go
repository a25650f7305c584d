// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// DefaultBaseURL is the production backend, baked in so the client works with
// zero configuration.
const DefaultBaseURL = "https://web-production-51f3.up.railway.app"

type Config struct {
	BaseURL      string `env:"SENTRYPRIME_API_URL"`
	SessionFile  string `env:"SENTRYPRIME_SESSION_FILE"`
	ScanMaxPages int    `env:"SENTRYPRIME_SCAN_MAX_PAGES" default:"10"`
	LogLevel     string `env:"LOG_LEVEL" default:"info"`
	LogFormat    string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.SessionFile == "" {
		path, err := defaultSessionFile()
		if err != nil {
			return nil, err
		}
		cfg.SessionFile = path
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SENTRYPRIME_API_URL must be an absolute URL, got %q", cfg.BaseURL)
	}

	if cfg.ScanMaxPages < 1 || cfg.ScanMaxPages > 100 {
		return fmt.Errorf("SENTRYPRIME_SCAN_MAX_PAGES must be between 1 and 100, got %d", cfg.ScanMaxPages)
	}

	return nil
}

func defaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config dir: %w", err)
	}
	return filepath.Join(dir, "sentryprime", "session.json"), nil
}
