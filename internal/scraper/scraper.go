// Package scraper implements job posting fetching, normalisation,
// classification, deduplication and the scrape pipeline.
package scraper

import (
	"context"
	"net/http"
	"time"

	"jobskenya/jobs-service/internal/model"
)

const (
	httpTimeout    = 25 * time.Second
	userAgent      = "Mozilla/5.0 (compatible; JobsKenyaBot/1.0; +https://jobskenya.co.ke)"
	maxDescription = 2000
)

// Source is one upstream job board. Fetch returns every posting the source
// currently offers, already normalised into model.Job. A failed fetch returns
// an error and no postings; partial per-record failures are skipped inside
// the adapter and never surface here.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Job, error)
}

// newHTTPClient returns the client shared by all adapters. One bounded-time
// call per source per run; a slow upstream can only cost its own timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
