package graph

import (
	"math"
	"time"
)

// Pruning thresholds: a concept is removed only when its decayed weight has
// faded below pruneWeight AND it was never reinforced past a single session.
// Repeat concepts survive regardless of weight.
const pruneWeight = 0.01

// ApplyDecay ages every concept's weight by its days of inactivity using the
// graph's half-life: weight *= 2^(-days/halfLife). Same-day (or clock-skewed)
// concepts are untouched, and a malformed lastSeen skips that one concept
// rather than aborting the pass. Pruned concepts take their edges with them.
// This is the only deletion path in the whole engine.
func ApplyDecay(g *Graph) {
	halfLife := g.HalfLife()
	now := time.Now()

	var toRemove []string
	for _, id := range g.sortedIDs() {
		c := g.Concepts[id]
		if c.LastSeen == "" {
			continue
		}
		days, err := daysSince(c.LastSeen, now)
		if err != nil {
			continue
		}
		if days <= 0 {
			continue
		}
		c.Weight *= math.Exp2(-float64(days) / halfLife)
		if c.Weight < pruneWeight && c.SessionCount <= 1 {
			toRemove = append(toRemove, id)
		}
	}

	if len(toRemove) == 0 {
		return
	}

	removed := make(map[string]bool, len(toRemove))
	for _, id := range toRemove {
		removed[id] = true
		delete(g.Concepts, id)
	}

	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if removed[e.Src] || removed[e.Tgt] {
			continue
		}
		kept = append(kept, e)
	}
	g.Edges = kept
}
