// Package scheduler wires up the cron job that periodically runs the scrape
// pipeline.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobskenya/jobs-service/internal/scraper"
)

// Scheduler wraps robfig/cron and manages the scrape loop.
type Scheduler struct {
	cron     *cron.Cron
	pipeline *scraper.Pipeline
	spec     string // cron spec, e.g. "@every 1h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(pipeline *scraper.Pipeline, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		pipeline: pipeline,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one scrape
// immediately so the store is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runScrape(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runScrape(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runScrape(ctx context.Context) {
	result, err := s.pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, scraper.ErrRunInProgress) {
			log.Println("[scheduler] Previous run still in progress — skipping tick")
			return
		}
		log.Printf("[scheduler] Scrape failed: %v", err)
		return
	}
	log.Printf("[scheduler] Scrape complete — %d jobs at %s", result.Count, result.Timestamp)
}
