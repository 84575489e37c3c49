// Package api implements the native REST API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/vmunix/cinedex/internal/indexer"
	"github.com/vmunix/cinedex/internal/library"
)

const defaultSort = "duration"

// Server is the API server. It owns the background index job slot; all
// index runs started through it are joined on Shutdown.
type Server struct {
	store   library.Store // nil when caching is disabled
	svc     *indexer.Service
	version string
	log     *slog.Logger

	indexCtx context.Context

	mu         sync.Mutex
	background *indexer.Job
}

// New creates a new API server. A nil store puts the server in no-caching
// mode: every listing request performs a full scan-and-enrich pass into a
// throwaway store, which costs one full network pass per request.
func New(store library.Store, svc *indexer.Service, version string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		store:    store,
		svc:      svc,
		version:  version,
		log:      log,
		indexCtx: context.Background(),
	}
}

// SetIndexContext sets the parent context for background index runs, so
// canceling it on shutdown also cancels any in-flight run.
func (s *Server) SetIndexContext(ctx context.Context) {
	s.indexCtx = ctx
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/movies", s.listMovies)
	mux.HandleFunc("POST /api/v1/movies/search", s.searchMovies)
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("POST /api/v1/scan", s.triggerScan)
}

// StartIndex launches a background index run if none is in flight.
// Reports whether a run was started; a no-op in no-caching mode.
func (s *Server) StartIndex() bool {
	if s.store == nil {
		s.log.Info("caching disabled, skipping background index")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.background != nil && s.background.Running() {
		return false
	}
	s.background = indexer.Start(s.indexCtx, func(ctx context.Context) error {
		_, err := s.svc.Index(ctx, s.store)
		return err
	})
	return true
}

// Shutdown cancels and joins any in-flight background index run.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	job := s.background
	s.mu.Unlock()
	if job == nil {
		return nil
	}
	return job.Stop(ctx)
}

func (s *Server) job() *indexer.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// movies returns the records visible to a listing request. Readers observe
// whatever subset of the cache has been populated so far; only when the
// cache is still empty does a request await the in-flight background run,
// bounded by the request context.
func (s *Server) movies(ctx context.Context) ([]library.Movie, error) {
	if s.store == nil {
		return s.svc.Index(ctx, library.NewMemoryStore(nil))
	}

	all := s.store.All()
	if len(all) == 0 {
		if job := s.job(); job != nil {
			if err := job.Wait(ctx); err != nil {
				s.log.Warn("index run incomplete", "error", err)
			}
			all = s.store.All()
		}
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	movies := make([]library.Movie, 0, len(all))
	for _, k := range keys {
		movies = append(movies, all[k])
	}
	return movies, nil
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	keywords := r.URL.Query()["q"]
	sortField := r.URL.Query().Get("sort")
	if sortField == "" {
		sortField = defaultSort
	}

	movies, err := s.movies(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "INDEX_INCOMPLETE", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results: library.Search(movies, keywords, sortField),
	})
}

func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Sort == "" {
		req.Sort = defaultSort
	}

	movies, err := s.movies(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "INDEX_INCOMPLETE", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results: library.Search(movies, req.Keywords, req.Sort),
	})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	count := 0
	if s.store != nil {
		count = len(s.store.All())
	}

	indexing := false
	if job := s.job(); job != nil {
		indexing = job.Running()
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Version:  s.version,
		Movies:   count,
		Indexing: indexing,
		Caching:  s.store != nil,
	})
}

func (s *Server) triggerScan(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusConflict, "CACHE_DISABLED",
			"caching is disabled; every listing request already performs a full index pass")
		return
	}
	if !s.StartIndex() {
		writeError(w, http.StatusConflict, "SCAN_IN_PROGRESS", "an index run is already in flight")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}
