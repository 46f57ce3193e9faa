// Package config loads environment-driven server configuration (spec §6.3),
// mirroring the teacher's habit of loading a .env file via godotenv before
// falling back to process environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the three environment-driven settings named in spec §6.3.
type Config struct {
	Host        string
	Port        string
	DatabaseURL string
}

// Load reads HOST (default 127.0.0.1), PORT (default 8080) and the required
// DATABASE_URL. A .env file is loaded first if present; its absence is
// non-fatal, the way the teacher's cmd/server/main.go treats godotenv.Load.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg(".env not loaded, continuing with process environment")
	}

	cfg := Config{
		Host:        getEnvDefault("HOST", "127.0.0.1"),
		Port:        getEnvDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return cfg, nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
