package store

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobskenya/jobs-service/internal/model"
)

// metadata keys in scraper_meta.
const (
	metaLastRun   = "last_run"
	metaTotalJobs = "total_jobs"
)

// Store is the persistence gateway over Postgres. The optional cache holds
// the latest unfiltered jobs payload and is invalidated on every replace.
type Store struct {
	pool  *pgxpool.Pool
	cache *Cache
}

// New constructs a Store. cache may be nil.
func New(pool *pgxpool.Pool, cache *Cache) *Store {
	return &Store{pool: pool, cache: cache}
}

// Filters narrows a Query. Empty fields match everything; all matches are
// case-insensitive substring tests.
type Filters struct {
	Region  string
	Type    string
	Keyword string // matched against title OR company
	Limit   int
}

// Status summarises the last run, derived from scraper_meta only. A zero
// LastRun means the scraper has never completed a run.
type Status struct {
	TotalJobs int
	LastRun   string
}

// EnsureSchema idempotently creates the two relations the gateway needs.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scraped_jobs (
			id              TEXT PRIMARY KEY,
			title           TEXT,
			company         TEXT,
			location        TEXT,
			region          TEXT,
			employment_type TEXT,
			sector          TEXT,
			salary          TEXT,
			deadline        TEXT,
			link            TEXT,
			contact_email   TEXT,
			description     TEXT,
			source          TEXT,
			fetched_at      TEXT
		);
		CREATE TABLE IF NOT EXISTS scraper_meta (
			key   TEXT PRIMARY KEY,
			value TEXT
		)`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// ReplaceAll atomically replaces the stored job set with jobs and records
// ranAt and the count in scraper_meta. Everything happens in one
// transaction: a failed write leaves the previous set untouched. The upsert
// is field-complete, so an id reused within a run can never keep stale
// columns.
func (s *Store) ReplaceAll(ctx context.Context, jobs []model.Job, ranAt time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scraped_jobs`); err != nil {
		return fmt.Errorf("delete old jobs: %w", err)
	}

	for _, j := range jobs {
		_, err := tx.Exec(ctx,
			`INSERT INTO scraped_jobs
			   (id, title, company, location, region, employment_type, sector,
			    salary, deadline, link, contact_email, description, source, fetched_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			 ON CONFLICT (id) DO UPDATE SET
			   title = EXCLUDED.title,
			   company = EXCLUDED.company,
			   location = EXCLUDED.location,
			   region = EXCLUDED.region,
			   employment_type = EXCLUDED.employment_type,
			   sector = EXCLUDED.sector,
			   salary = EXCLUDED.salary,
			   deadline = EXCLUDED.deadline,
			   link = EXCLUDED.link,
			   contact_email = EXCLUDED.contact_email,
			   description = EXCLUDED.description,
			   source = EXCLUDED.source,
			   fetched_at = EXCLUDED.fetched_at`,
			j.ID, j.Title, j.Company, j.Location, j.Region, j.EmploymentType,
			j.Sector, j.Salary, j.Deadline, j.Link, j.ContactEmail,
			j.Description, j.Source, j.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("insert job %s: %w", j.ID, err)
		}
	}

	for key, value := range map[string]string{
		metaLastRun:   ranAt.Format(time.RFC3339),
		metaTotalJobs: strconv.Itoa(len(jobs)),
	} {
		_, err := tx.Exec(ctx,
			`INSERT INTO scraper_meta (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("update meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("[store] cache invalidate failed: %v", err)
		}
	}
	return nil
}

// Query returns jobs matching f, most recently fetched first.
func (s *Store) Query(ctx context.Context, f Filters) ([]model.Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 80
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, location, region, employment_type, sector,
		        salary, deadline, link, contact_email, description, source, fetched_at
		 FROM scraped_jobs
		 WHERE ($1 = '' OR region ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR employment_type ILIKE '%' || $2 || '%')
		   AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR company ILIKE '%' || $3 || '%')
		 ORDER BY fetched_at DESC
		 LIMIT $4`,
		f.Region, f.Type, f.Keyword, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location, &j.Region,
			&j.EmploymentType, &j.Sector, &j.Salary, &j.Deadline, &j.Link,
			&j.ContactEmail, &j.Description, &j.Source, &j.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// GetStatus reads run metadata. It never touches scraped_jobs: the status
// surface reflects the last run even if the job table is empty.
func (s *Store) GetStatus(ctx context.Context) (Status, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value FROM scraper_meta WHERE key IN ($1, $2)`,
		metaLastRun, metaTotalJobs,
	)
	if err != nil {
		return Status{}, fmt.Errorf("query meta: %w", err)
	}
	defer rows.Close()

	var st Status
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Status{}, fmt.Errorf("scan meta: %w", err)
		}
		switch key {
		case metaLastRun:
			st.LastRun = value
		case metaTotalJobs:
			st.TotalJobs, _ = strconv.Atoi(value)
		}
	}
	return st, rows.Err()
}
