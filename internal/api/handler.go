// Package api implements the HTTP surface of the jobs service.
//
// Routes:
//
//	GET  /jobs?region=&type=&q=&limit=  → filtered job listings
//	GET  /status                        → last-run metadata
//	GET  /scrape                        → trigger one run (trusted periodic invoker)
//	POST /scrape                        → trigger one run (requires X-Admin-Token)
//	GET  /health                        → liveness
//
// Every response carries CORS allow-all headers; OPTIONS returns an empty
// 200 on any route. Read endpoints never 500 on missing data — they report
// a structured no-data state instead.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"jobskenya/jobs-service/internal/model"
	"jobskenya/jobs-service/internal/scraper"
	"jobskenya/jobs-service/internal/store"
)

const (
	defaultLimit = 80
	maxLimit     = 200
)

// JobStore is the read surface the handlers need from the persistence
// gateway.
type JobStore interface {
	Query(ctx context.Context, f store.Filters) ([]model.Job, error)
	GetStatus(ctx context.Context) (store.Status, error)
}

// Runner triggers one scrape run.
type Runner interface {
	Run(ctx context.Context) (model.RunResult, error)
}

// Deps carries the handler's collaborators. Store and Runner are nil when
// the service runs without a database; the read path then degrades to a
// no-data response instead of crashing.
type Deps struct {
	Store       JobStore
	Runner      Runner
	Cache       *store.Cache
	AdminSecret string
}

// Handler holds shared dependencies for all routes.
type Handler struct {
	deps Deps
}

// NewHandler returns a configured Handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// RegisterRoutes mounts all routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/jobs", h.handleJobs)
	mux.HandleFunc("/status", h.handleStatus)
	mux.HandleFunc("/scrape", h.handleScrape)
}

// ─── Routes ──────────────────────────────────────────────────────────────────

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if handleOptions(w, r) {
		return
	}
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "running",
		"service": "jobs-kenya-api",
		"endpoints": map[string]string{
			"GET  /jobs":   "Get scraped jobs (?region=Nairobi&type=NGO&q=accountant)",
			"GET  /status": "Check scraper status",
			"GET  /scrape": "Trigger scrape (runs automatically on a schedule)",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if handleOptions(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "jobs-service",
		"version": "1.0.0",
	})
}

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if handleOptions(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if h.deps.Store == nil {
		writeNoJobs(w)
		return
	}

	q := r.URL.Query()
	filters := store.Filters{
		Region:  q.Get("region"),
		Type:    q.Get("type"),
		Keyword: q.Get("q"),
		Limit:   defaultLimit,
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filters.Limit = n
		}
	}
	if filters.Limit > maxLimit {
		filters.Limit = maxLimit
	}

	// The unfiltered default request is the hot path: serve it from the
	// cache when possible.
	unfiltered := filters == store.Filters{Limit: defaultLimit}
	if unfiltered && h.deps.Cache != nil {
		if payload, ok := h.deps.Cache.Get(r.Context()); ok {
			writeRawJSON(w, http.StatusOK, payload)
			return
		}
	}

	status, err := h.deps.Store.GetStatus(r.Context())
	if err != nil {
		log.Printf("[api] status query error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "database error", "total": 0, "jobs": []model.Job{},
		})
		return
	}
	if status.LastRun == "" {
		writeNoJobs(w)
		return
	}

	jobs, err := h.deps.Store.Query(r.Context(), filters)
	if err != nil {
		log.Printf("[api] jobs query error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "database error", "total": 0, "jobs": []model.Job{},
		})
		return
	}

	payload, err := json.Marshal(map[string]any{
		"total":      len(jobs),
		"scraped_at": status.LastRun,
		"jobs":       jobs,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encoding error"})
		return
	}
	if unfiltered && h.deps.Cache != nil {
		if err := h.deps.Cache.Set(r.Context(), payload); err != nil {
			log.Printf("[api] cache set failed: %v", err)
		}
	}
	writeRawJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if handleOptions(w, r) {
		return
	}
	if h.deps.Store == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "no_data",
			"total_jobs": 0,
			"last_run":   nil,
			"message":    "No database configured — scraper has not run",
		})
		return
	}

	status, err := h.deps.Store.GetStatus(r.Context())
	if err != nil {
		log.Printf("[api] status query error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error", "error": "database error",
		})
		return
	}
	if status.LastRun == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "no_data",
			"total_jobs": 0,
			"last_run":   nil,
			"message":    "Scraper has not run yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"total_jobs": status.TotalJobs,
		"last_run":   status.LastRun,
	})
}

func (h *Handler) handleScrape(w http.ResponseWriter, r *http.Request) {
	if handleOptions(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		// Trusted periodic invoker — no auth by design.
	case http.MethodPost:
		// Manual trigger: rejected before any scrape work begins.
		if r.Header.Get("X-Admin-Token") != h.deps.AdminSecret {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if h.deps.Runner == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "total_jobs": 0, "error": "no database configured",
		})
		return
	}

	result, err := h.deps.Runner.Run(r.Context())
	if err != nil {
		if errors.Is(err, scraper.ErrRunInProgress) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"success": false, "error": err.Error(),
			})
			return
		}
		log.Printf("[api] scrape run failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "total_jobs": 0, "error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"total_jobs": result.Count,
		"scraped_at": result.Timestamp,
		"message":    "Scrape complete",
	})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func writeNoJobs(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   0,
		"jobs":    []model.Job{},
		"message": "No jobs yet — scraper runs every hour",
	})
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Token")
}

// handleOptions answers CORS preflight with an empty 200. Returns true when
// the request was an OPTIONS and has been handled.
func handleOptions(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	setCORS(w)
	w.WriteHeader(http.StatusOK)
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	setCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode response: %v", err)
	}
}

func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	setCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		log.Printf("[api] write response: %v", err)
	}
}
