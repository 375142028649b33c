package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds the client configuration loaded from the environment.
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL" default:"http://localhost:5000/api"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" default:"10s"`

	// DataDir is where the token and user record are persisted.
	// Defaults to ~/.orderfood when unset.
	DataDir string `env:"DATA_DIR"`

	// CredentialsKey encrypts the stored token at rest. Optional: when empty
	// the token is stored unencrypted (dev mode).
	CredentialsKey string `env:"CREDENTIALS_KEY"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// MockAPIConfig holds the development server configuration.
type MockAPIConfig struct {
	Port          string        `env:"PORT" default:"5000"`
	JWTSecret     string        `env:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" default:"168h"`
	AdminEmail    string        `env:"ADMIN_EMAIL" default:"admin@orderfood.local"`
	AdminPassword string        `env:"ADMIN_PASSWORD" default:"admin123"`
	LogLevel      string        `env:"LOG_LEVEL" default:"info"`
	LogFormat     string        `env:"LOG_FORMAT" default:"text"`
}

// Load reads the client configuration from .env and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for DATA_DIR: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".orderfood")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadMockAPI reads the development server configuration.
func LoadMockAPI() (*MockAPIConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg MockAPIConfig
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}

	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	if cfg.CredentialsKey != "" {
		keyBytes, err := hex.DecodeString(cfg.CredentialsKey)
		if err != nil {
			return fmt.Errorf("CREDENTIALS_KEY must be valid hex: %w", err)
		}
		if len(keyBytes) != 32 {
			return fmt.Errorf("CREDENTIALS_KEY must be exactly 64 hex characters (32 bytes), got %d bytes", len(keyBytes))
		}
	}

	return nil
}
