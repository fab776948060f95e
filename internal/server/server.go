package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hollowoak/wander/internal/graph"
	"github.com/hollowoak/wander/internal/history"
)

// Server is the wander HTTP API server. It owns the graph store and the
// history database; every mutating request reloads the document, applies the
// change, and saves the whole thing back (single-writer by contract).
type Server struct {
	store   *graph.Store
	db      *history.DB
	limits  history.Limits
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server.
func New(store *graph.Store, db *history.DB, limits history.Limits, version string) *Server {
	s := &Server{
		store:   store,
		db:      db,
		limits:  limits,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/", s.handleReport)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/graph", s.handleGraphSummary)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/communities", s.handleCommunities)
		r.Get("/gaps", s.handleGaps)
		r.Get("/brief", s.handleBrief)

		r.Post("/concepts", s.handleAddConcepts)
		r.Post("/sessions", s.handleRecordSession)
		r.Post("/bandit/{conceptID}", s.handleBandit)
		r.Post("/decay", s.handleDecay)

		r.Get("/history", s.handleHistory)
		r.Get("/limits", s.handleLimits)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"version":    s.version,
		"uptime":     time.Since(s.started).Seconds(),
		"db":         dbOK,
		"graph_path": s.store.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
