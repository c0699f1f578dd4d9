// Package httpapi implements the HTTP handlers for the ingest service.
//
// Routes:
//
//	POST /raw-jobs/search            → run one fetch+store cycle for ad hoc criteria
//	GET  /raw-jobs                   → list stored raw jobs (paginated)
//	GET  /mature-jobs                → list mature jobs (paginated)
//	POST /mature-jobs                → create a mature job
//	POST /mature-jobs/{id}/applied   → update the applied-by set / relevance flag
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"jobscraper/ingest-service/internal/model"
	"jobscraper/ingest-service/internal/store"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Searcher runs one ad hoc fetch+store cycle outside the scheduled sweep.
type Searcher interface {
	FetchAndStore(ctx context.Context, criteria model.SearchCriteria) ([]model.RawJob, error)
}

// RawJobLister is the raw-job read surface.
type RawJobLister interface {
	List(ctx context.Context, page, limit int) ([]model.RawJob, int, error)
}

// MatureJobs is the mature-job management surface.
type MatureJobs interface {
	List(ctx context.Context, page, limit int) ([]model.MatureJob, int, error)
	Create(ctx context.Context, mj model.MatureJob) (*model.MatureJob, error)
	UpdateAppliedBy(ctx context.Context, id string, add, remove []string, isRelevant *bool) (*model.MatureJob, error)
}

// Handler holds shared dependencies.
type Handler struct {
	search  Searcher
	raws    RawJobLister
	matures MatureJobs
}

// NewHandler returns a configured Handler.
func NewHandler(search Searcher, raws RawJobLister, matures MatureJobs) *Handler {
	return &Handler{search: search, raws: raws, matures: matures}
}

// RegisterRoutes mounts all ingest-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/raw-jobs", h.handleRawJobs)
	mux.HandleFunc("/raw-jobs/search", h.handleSearch)
	mux.HandleFunc("/mature-jobs", h.handleMatureJobs)
	mux.HandleFunc("/mature-jobs/", h.handleMatureJobAction)
}

// ─── Raw jobs ─────────────────────────────────────────────────────────────────

// handleRawJobs handles GET /raw-jobs
func (h *Handler) handleRawJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, limit, err := pagination(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	jobs, total, err := h.raws.List(r.Context(), page, limit)
	if err != nil {
		log.Printf("[httpapi] list raw jobs error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, listResponse[model.RawJob]{
		Items: jobs, TotalRecords: total, Page: page, Limit: limit,
	})
}

// handleSearch handles POST /raw-jobs/search — the on-demand single-query
// fetch+store used for ad hoc testing, not the scheduled sweep. Unlike the
// sweep, errors here surface directly to the caller.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var criteria model.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if criteria.Keyword == "" {
		jsonError(w, "body must contain keyword", http.StatusBadRequest)
		return
	}

	inserted, err := h.search.FetchAndStore(r.Context(), criteria)
	if err != nil {
		log.Printf("[httpapi] ad hoc search %q failed: %v", criteria.Keyword, err)
		jsonError(w, fmt.Sprintf("search failed: %v", err), http.StatusBadGateway)
		return
	}

	jsonOK(w, map[string]any{
		"message": "jobs found and stored successfully",
		"newJobs": inserted,
	})
}

// ─── Mature jobs ──────────────────────────────────────────────────────────────

// handleMatureJobs handles GET /mature-jobs and POST /mature-jobs
func (h *Handler) handleMatureJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listMatureJobs(w, r)
	case http.MethodPost:
		h.createMatureJob(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleMatureJobAction handles POST /mature-jobs/{id}/applied
func (h *Handler) handleMatureJobAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse /mature-jobs/{id}/{action}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	jobID := parts[1]
	action := parts[2]

	switch action {
	case "applied":
		h.updateAppliedBy(w, r, jobID)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
	}
}

func (h *Handler) listMatureJobs(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pagination(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	jobs, total, err := h.matures.List(r.Context(), page, limit)
	if err != nil {
		log.Printf("[httpapi] list mature jobs error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, listResponse[model.MatureJob]{
		Items: jobs, TotalRecords: total, Page: page, Limit: limit,
	})
}

func (h *Handler) createMatureJob(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RawJobID *string `json:"rawJobId"`
		Source   string  `json:"source"`
		URL      string  `json:"url"`
		Email    string  `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	src, err := model.ParseSource(body.Source)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	mj, err := h.matures.Create(r.Context(), model.MatureJob{
		RawJobID:   body.RawJobID,
		Source:     src,
		URL:        body.URL,
		Email:      body.Email,
		IsRelevant: true,
	})
	if err != nil {
		log.Printf("[httpapi] create mature job error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, mj)
}

func (h *Handler) updateAppliedBy(w http.ResponseWriter, r *http.Request, jobID string) {
	var body struct {
		Add        []string `json:"add"`
		Remove     []string `json:"remove"`
		IsRelevant *bool    `json:"isRelevant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	mj, err := h.matures.UpdateAppliedBy(r.Context(), jobID, body.Add, body.Remove, body.IsRelevant)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "mature job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[httpapi] update applied-by error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, mj)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type listResponse[T any] struct {
	Items        []T `json:"items"`
	TotalRecords int `json:"totalRecords"`
	Page         int `json:"page"`
	Limit        int `json:"limit"`
}

// pagination parses ?page= and ?limit= with the service defaults.
func pagination(r *http.Request) (page, limit int, err error) {
	page, limit = defaultPage, defaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, fmt.Errorf("limit must be between 1 and %d, got %q", maxLimit, raw)
		}
	}
	return page, limit, nil
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
