package scraper

import (
	"strings"

	"jobskenya/jobs-service/internal/model"
)

// dedupKey derives the cross-source identity of a posting: truncated
// lowercase title and company. Two postings sharing the key are the same job.
func dedupKey(j model.Job) string {
	return truncate(strings.ToLower(j.Title), 40) + "|" + truncate(strings.ToLower(j.Company), 25)
}

// Dedupe collapses postings sharing a dedup key, keeping the first
// occurrence in slice order. Source order is fixed by the pipeline, so the
// survivor is deterministic.
func Dedupe(jobs []model.Job) []model.Job {
	seen := make(map[string]struct{}, len(jobs))
	unique := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		key := dedupKey(j)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, j)
	}
	return unique
}
