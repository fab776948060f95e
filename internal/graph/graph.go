package graph

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date format used throughout the graph document.
// Dates carry no time component; "today" is always computed in UTC.
const DateLayout = "2006-01-02"

// Bandit holds the Beta-distribution posterior for a concept: alpha counts
// engagements, beta counts ignored suggestions.
type Bandit struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Concept is a node in the interest graph.
type Concept struct {
	Labels       map[string]string `json:"labels"`
	Category     string            `json:"category"`
	Weight       float64           `json:"weight"`
	LastSeen     string            `json:"lastSeen"`
	SessionCount int               `json:"sessionCount"`
	Broader      []string          `json:"broader"`
	Narrower     []string          `json:"narrower"`
	Related      []string          `json:"related"`
	Bandit       Bandit            `json:"bandit"`
}

// Label returns the display label for a language tag, falling back to the
// concept id when no label is stored.
func (c *Concept) Label(lang, id string) string {
	if l, ok := c.Labels[lang]; ok && l != "" {
		return l
	}
	return id
}

// connectionCount is the number of explicit relations on a concept.
func (c *Concept) connectionCount() int {
	return len(c.Broader) + len(c.Narrower) + len(c.Related)
}

// Edge is an undirected co-occurrence link. Src/Tgt are always stored in
// canonical order: Src < Tgt lexicographically.
type Edge struct {
	Src      string `json:"src"`
	Tgt      string `json:"tgt"`
	W        int    `json:"w"`
	LastSeen string `json:"lastSeen"`
}

// Meta holds graph-level bookkeeping.
type Meta struct {
	TotalSessions int     `json:"totalSessions"`
	LastUpdated   string  `json:"lastUpdated"`
	HalfLifeDays  float64 `json:"halfLifeDays"`
}

// Graph is the whole persisted interest-graph document.
type Graph struct {
	Version  int                 `json:"version"`
	Meta     Meta                `json:"meta"`
	Concepts map[string]*Concept `json:"concepts"`
	Edges    []Edge              `json:"edges"`
}

// New returns an empty graph with schema defaults.
func New() *Graph {
	return &Graph{
		Version:  1,
		Meta:     Meta{HalfLifeDays: 90},
		Concepts: map[string]*Concept{},
		Edges:    []Edge{},
	}
}

// HalfLife returns the configured half-life in days, defaulting to 90.
func (g *Graph) HalfLife() float64 {
	if g.Meta.HalfLifeDays <= 0 {
		return 90
	}
	return g.Meta.HalfLifeDays
}

// sortedIDs returns concept ids in lexicographic order. Go map iteration is
// randomized, so every pass that draws randomness or produces ranked output
// walks this instead.
func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.Concepts))
	for id := range g.Concepts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// edgeKey returns the canonical (min, max) ordering for a pair of ids.
func edgeKey(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// Today formats the current UTC calendar date.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// daysSince returns whole days elapsed from a stored date to now.
func daysSince(date string, now time.Time) (int, error) {
	last, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, err
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(today.Sub(last).Hours() / 24), nil
}

// sortedUnion merges two id sets into a sorted slice without duplicates.
// Relation sets are persisted this way to keep the document diff-friendly.
func sortedUnion(old, add []string) []string {
	seen := make(map[string]bool, len(old)+len(add))
	for _, id := range old {
		seen[id] = true
	}
	for _, id := range add {
		seen[id] = true
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
