package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hollowoak/wander/internal/graph"
	"github.com/hollowoak/wander/internal/history"
	"github.com/hollowoak/wander/internal/report"
)

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	g := s.store.Load()
	sessions, err := s.db.RecentSessions(20)
	if err != nil {
		sessions = nil // report still renders without history
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, g, sessions); err != nil {
		http.Error(w, "render report failed", http.StatusInternalServerError)
	}
}

func (s *Server) handleGraphSummary(w http.ResponseWriter, r *http.Request) {
	g := s.store.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"concepts":       len(g.Concepts),
		"edges":          len(g.Edges),
		"total_sessions": g.Meta.TotalSessions,
		"last_updated":   g.Meta.LastUpdated,
		"half_life_days": g.HalfLife(),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	n := queryInt(r, "n", 5)
	seed := time.Now().UnixNano()
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		seed = parsed
	}

	var exclude []string
	if v := r.URL.Query().Get("exclude"); v != "" {
		exclude = strings.Split(v, ",")
	}

	g := s.store.Load()
	suggestions := graph.Suggest(g, n, exclude, seed)
	if suggestions == nil {
		suggestions = []graph.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handleCommunities(w http.ResponseWriter, r *http.Request) {
	minWeight := queryInt(r, "min_weight", 2)
	g := s.store.Load()
	writeJSON(w, http.StatusOK, graph.DetectCommunities(g, minWeight))
}

func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	n := queryInt(r, "n", 5)
	maxNodes := queryInt(r, "max_nodes", graph.DefaultMaxGapNodes)
	g := s.store.Load()
	gaps := graph.FindGaps(g, n, maxNodes)
	if gaps == nil {
		gaps = []graph.Gap{}
	}
	writeJSON(w, http.StatusOK, gaps)
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	g := s.store.Load()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report.Brief(g, report.DefaultBriefOptions())))
}

func (s *Server) handleAddConcepts(w http.ResponseWriter, r *http.Request) {
	var inputs []graph.ConceptInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	g := s.store.Load()
	graph.AddConcepts(g, inputs)
	if err := s.store.Save(g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"concepts": len(g.Concepts)})
}

// handleRecordSession ingests one exploration session: upserts the concepts,
// records their co-occurrence edges, and bumps the session counter.
func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Concepts []graph.ConceptInput `json:"concepts"`
		Keywords []string             `json:"keywords"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	g := s.store.Load()
	graph.AddConcepts(g, req.Concepts)
	keywords := req.Keywords
	if len(keywords) == 0 {
		for _, c := range req.Concepts {
			keywords = append(keywords, c.ID)
		}
	}
	graph.RecordCooccurrences(g, keywords)
	g.Meta.TotalSessions++

	if err := s.store.Save(g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"concepts":       len(g.Concepts),
		"edges":          len(g.Edges),
		"total_sessions": g.Meta.TotalSessions,
	})
}

func (s *Server) handleBandit(w http.ResponseWriter, r *http.Request) {
	conceptID := chi.URLParam(r, "conceptID")

	var req struct {
		Engaged bool `json:"engaged"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	g := s.store.Load()
	graph.UpdateBandit(g, conceptID, req.Engaged)
	if err := s.store.Save(g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Unknown ids are a no-op, not an error; report what we know.
	if c, ok := g.Concepts[conceptID]; ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"id": conceptID, "alpha": c.Bandit.Alpha, "beta": c.Bandit.Beta,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": conceptID, "known": false})
}

func (s *Server) handleDecay(w http.ResponseWriter, r *http.Request) {
	g := s.store.Load()
	before := len(g.Concepts)
	graph.ApplyDecay(g)
	if err := s.store.Save(g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pruned":    before - len(g.Concepts),
		"remaining": len(g.Concepts),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	sessions, err := s.db.RecentSessions(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []history.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	sessionTokens := int64(queryInt(r, "session_tokens", 0))
	result, err := s.db.CheckLimits(s.limits, sessionTokens, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
