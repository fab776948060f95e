package graph

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Suggestion is one ranked topic candidate.
type Suggestion struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Suggest ranks concepts via Thompson Sampling with a recency multiplier and
// a serendipity bonus, returning the top n. Candidates need weight >= 0.05
// and must not appear in excludeIDs (typically the recently-suggested set).
//
// All randomness for one call flows through a single generator built from
// seed, and concepts are visited in sorted-id order, so the same seed over
// the same graph state reproduces the identical ranked output. The recency
// factor reuses the decay formula as a read-only preview; stored weights
// are never touched here.
func Suggest(g *Graph, n int, excludeIDs []string, seed int64) []Suggestion {
	rng := rand.New(rand.NewSource(seed))

	exclude := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = true
	}

	halfLife := g.HalfLife()
	now := time.Now()

	var candidates []Suggestion
	for _, id := range g.sortedIDs() {
		c := g.Concepts[id]
		if c.Weight < 0.05 {
			continue
		}
		if exclude[id] {
			continue
		}

		alpha, beta := c.Bandit.Alpha, c.Bandit.Beta
		tsScore := betaSample(rng, math.Max(alpha, 0.1), math.Max(beta, 0.1))

		days := 0
		recency := 0.5
		if c.LastSeen != "" {
			if d, err := daysSince(c.LastSeen, now); err == nil {
				days = d
				recency = math.Exp2(-float64(days) / halfLife)
			}
		}

		connections := c.connectionCount()
		serendipity := 1.0 / (1.0 + 0.1*float64(connections))

		score := tsScore * recency * (1.0 + 0.3*serendipity)

		var reason string
		switch {
		case days > 60:
			reason = "revisit"
		case connections == 0:
			reason = "unexplored connection"
		case alpha > 2*beta:
			reason = "strong interest"
		default:
			reason = "balanced exploration"
		}

		candidates = append(candidates, Suggestion{ID: id, Score: score, Reason: reason})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// betaSample draws from Beta(a, b) as X/(X+Y) for X~Gamma(a,1), Y~Gamma(b,1).
func betaSample(rng *rand.Rand, a, b float64) float64 {
	x := gammaSample(rng, a)
	y := gammaSample(rng, b)
	if x+y == 0 {
		return 0.5
	}
	return x / (x + y)
}

// gammaSample draws from Gamma(shape, 1) using Marsaglia-Tsang squeeze
// rejection. Shapes below 1 are boosted via Gamma(shape) =
// Gamma(shape+1) * U^(1/shape).
func gammaSample(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return gammaSample(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}
