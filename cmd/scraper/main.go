// jobs-service one-shot scraper: runs a single scrape cycle and exits.
// Intended for an external scheduler (system cron, CI workflow). Exits
// non-zero when the database is not configured or the final write fails;
// individual source failures only shrink the result.
package main

import (
	"context"
	"log"

	"jobskenya/jobs-service/internal/config"
	"jobskenya/jobs-service/internal/scraper"
	"jobskenya/jobs-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[scraper] Config error: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("[scraper] DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := store.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[scraper] Postgres error: %v", err)
	}
	defer pool.Close()

	var cache *store.Cache
	if cfg.RedisURL != "" {
		cache, err = store.NewCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[scraper] Redis unavailable, skipping cache invalidation: %v", err)
			cache = nil
		}
	}

	st := store.New(pool, cache)
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("[scraper] Schema error: %v", err)
	}

	pipeline := scraper.NewPipeline(st, scraper.DefaultSources()...)
	result, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("[scraper] Run failed: %v", err)
	}

	log.Printf("[scraper] Done — %d jobs saved at %s", result.Count, result.Timestamp)
}
