package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backend variants, selected at composition time.
const (
	StorageDB     = "db"
	StorageMemory = "memory"
)

type Config struct {
	HTTPPort    int
	DatabaseURL string
	Storage     string // db | memory
	CORSOrigins []string
}

// Load reads configuration from the environment, with .env as a fallback for
// local development.
func Load() (*Config, error) {
	// missing .env is fine, real env vars still apply
	_ = godotenv.Load()

	cfg := &Config{}
	if err := loadEnvInt(&cfg.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	loadEnvString(&cfg.DatabaseURL, "DATABASE_URL", "filmorate.db")
	loadEnvString(&cfg.Storage, "STORAGE", StorageDB)
	loadEnvStringSlice(&cfg.CORSOrigins, "CORS_ORIGINS", nil)

	if cfg.Storage != StorageDB && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("config: unknown STORAGE value %q (want %q or %q)",
			cfg.Storage, StorageDB, StorageMemory)
	}
	return cfg, nil
}

func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
		return
	}
	*target = defaultValue
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("config: invalid integer for %s: %v", key, err)
	}
	*target = parsed
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*target = out
}
