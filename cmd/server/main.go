// jobs-service HTTP server: serves the read API and, when a database is
// configured, the scrape trigger plus an optional in-process cron schedule.
//
// Without DATABASE_URL the server still starts — read endpoints report
// no_data and the trigger returns an error — so a misconfigured deploy
// never takes the front end down with a crash loop.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"jobskenya/jobs-service/internal/api"
	"jobskenya/jobs-service/internal/config"
	"jobskenya/jobs-service/internal/scheduler"
	"jobskenya/jobs-service/internal/scraper"
	"jobskenya/jobs-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[server] Config error: %v", err)
	}

	ctx := context.Background()

	var cache *store.Cache
	if cfg.RedisURL != "" {
		cache, err = store.NewCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[server] Redis unavailable, running without cache: %v", err)
			cache = nil
		}
	}

	deps := api.Deps{AdminSecret: cfg.AdminSecret, Cache: cache}

	if cfg.DatabaseURL == "" {
		log.Println("[server] DATABASE_URL not set — read API will report no_data")
	} else {
		pool, err := store.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[server] Postgres error: %v", err)
		}
		defer pool.Close()

		st := store.New(pool, cache)
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatalf("[server] Schema error: %v", err)
		}

		pipeline := scraper.NewPipeline(st, scraper.DefaultSources()...)
		deps.Store = st
		deps.Runner = pipeline

		if cfg.ScrapeIntervalHours > 0 {
			sched := scheduler.New(pipeline, cfg.ScrapeIntervalHours)
			if err := sched.Start(ctx); err != nil {
				log.Fatalf("[server] Scheduler error: %v", err)
			}
			defer sched.Stop()
		}
	}

	mux := http.NewServeMux()
	api.NewHandler(deps).RegisterRoutes(mux)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("[server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("[server] Fatal: %v", err)
	}
}
