package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"jobskenya/jobs-service/internal/model"
)

// ErrRunInProgress is returned when Run is invoked while another run holds
// the pipeline. The caller decides whether to retry; the delete/insert
// phases of two runs must never interleave.
var ErrRunInProgress = errors.New("scrape run already in progress")

// Store is the persistence surface the pipeline writes to. ReplaceAll must
// leave the stored set exactly equal to jobs, atomically, and record ranAt
// and the count as run metadata.
type Store interface {
	ReplaceAll(ctx context.Context, jobs []model.Job, ranAt time.Time) error
}

// Pipeline runs every source adapter in a fixed order, merges and
// deduplicates their output, and hands the result to the store as one full
// replacement. Source order is configuration: it decides which duplicate
// survives deduplication.
type Pipeline struct {
	mu      sync.Mutex
	sources []Source
	store   Store
}

// NewPipeline constructs a pipeline over an explicit source list.
func NewPipeline(store Store, sources ...Source) *Pipeline {
	return &Pipeline{store: store, sources: sources}
}

// DefaultSources returns the production adapter list: the two structured
// APIs first, then the feeds in configured order.
func DefaultSources() []Source {
	sources := []Source{NewReliefWebSource(), NewRemotiveSource()}
	for _, spec := range FeedSources {
		sources = append(sources, NewFeedSource(spec))
	}
	return sources
}

// Run executes one scrape cycle. Each source failure is collapsed to an
// empty contribution and logged — only a persistence failure fails the run.
// A zero-posting run still replaces the stored set: the store always
// reflects the last run, stale data is never silently kept.
func (p *Pipeline) Run(ctx context.Context) (model.RunResult, error) {
	if !p.mu.TryLock() {
		return model.RunResult{}, ErrRunInProgress
	}
	defer p.mu.Unlock()

	log.Printf("[pipeline] Scrape started — %d sources", len(p.sources))

	var all []model.Job
	for _, src := range p.sources {
		jobs, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("[pipeline] %s failed: %v — contributing 0 jobs", src.Name(), err)
			continue
		}
		log.Printf("[pipeline] %s: %d jobs", src.Name(), len(jobs))
		all = append(all, jobs...)
	}

	unique := Dedupe(all)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].FetchedAt > unique[j].FetchedAt
	})
	log.Printf("[pipeline] %d fetched → %d unique", len(all), len(unique))

	ranAt := time.Now().UTC()
	if err := p.store.ReplaceAll(ctx, unique, ranAt); err != nil {
		return model.RunResult{}, fmt.Errorf("replace all: %w", err)
	}

	log.Printf("[pipeline] Scrape complete — %d jobs saved", len(unique))
	return model.RunResult{
		Count:     len(unique),
		Timestamp: ranAt.Format(time.RFC3339),
	}, nil
}
