// Package config resolves runtime settings from the environment and an
// optional .env file. Command-line flags override whatever is loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings every command shares.
type Config struct {
	DBPath      string // SQLite path or postgres:// DSN
	UserID      string
	LogLevel    string
	Timezone    string
	CatalogPath string
	APIKey      string
	Model       string
}

// DefaultModel is the Anthropic model used by the analyze command.
const DefaultModel = "claude-haiku-4-5-20251001"

// Load reads .env (if present) and then the OWSTATS_* variables.
func Load() *Config {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	return &Config{
		DBPath:      getEnv("OWSTATS_DB", filepath.Join(userHome(), ".owstats", "matches.db")),
		UserID:      getEnv("OWSTATS_USER", "local"),
		LogLevel:    getEnv("OWSTATS_LOG_LEVEL", "info"),
		Timezone:    getEnv("OWSTATS_TZ", "Local"),
		CatalogPath: getEnv("OWSTATS_CATALOG", ""),
		APIKey:      getEnv("ANTHROPIC_API_KEY", ""),
		Model:       getEnv("OWSTATS_MODEL", DefaultModel),
	}
}

// Location resolves the configured IANA zone name.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
