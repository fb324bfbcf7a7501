// Package config loads runtime configuration from the environment once at
// process start. Core logic never reads the environment itself — it receives
// this struct.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the jobs service.
type Config struct {
	Port                string
	DatabaseURL         string // empty → read path degrades to no_data, scraping unavailable
	RedisURL            string // empty → no read cache
	AdminSecret         string // X-Admin-Token value for the manual trigger
	ScrapeIntervalHours int    // 0 → no in-process scheduler, rely on external /scrape invoker
}

// Load reads a .env file if present, then the environment, and returns a
// validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	interval := 1
	if s := os.Getenv("SCRAPE_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("SCRAPE_INTERVAL_HOURS must be a non-negative integer, got %q", s)
		}
		interval = v
	}

	secret := os.Getenv("ADMIN_SECRET")
	if secret == "" {
		secret = "jobskenya-secret-2025"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:                port,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		AdminSecret:         secret,
		ScrapeIntervalHours: interval,
	}, nil
}
