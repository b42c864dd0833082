package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"sitetrust/internal/domain"
)

// Store backends selectable per deployment.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Env        string
	ListenAddr string

	// Store selects the persistence backend. The embedded sqlite store
	// needs only a file path; postgres needs DATABASE_URL.
	Store       string
	DatabaseURL string
	SQLitePath  string

	// RatingMode picks the write semantics: votes (POST, idempotent per
	// voter) or direct (PUT, unconditional upsert). Never both.
	RatingMode domain.RatingMode

	RateLimit  int
	RateWindow time.Duration

	LogLevel string
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:         getenv("APP_ENV", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", ":3000"),
		Store:       getenv("STORE", StoreSQLite),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "sitetrust.db"),
		RatingMode:  domain.RatingMode(getenv("RATING_MODE", string(domain.ModeVotes))),
		RateLimit:   getenvInt("RATE_LIMIT", 100),
		RateWindow:  getenvDuration("RATE_WINDOW", 15*time.Minute),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	switch cfg.Store {
	case StoreSQLite, StorePostgres:
	default:
		return cfg, fmt.Errorf("STORE must be %q or %q", StoreSQLite, StorePostgres)
	}
	if cfg.Store == StorePostgres && cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required when STORE=%s", StorePostgres)
	}
	switch cfg.RatingMode {
	case domain.ModeVotes, domain.ModeDirect:
	default:
		return cfg, fmt.Errorf("RATING_MODE must be %q or %q", domain.ModeVotes, domain.ModeDirect)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(v); err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if out, err := time.ParseDuration(v); err == nil {
			return out
		}
	}
	return def
}
