package graph

import (
	"math/rand"
	"reflect"
	"testing"
)

func suggestGraph() *Graph {
	g := New()
	seedConcept(g, "go", 5.0, daysAgo(2), 4)
	seedConcept(g, "raft", 3.0, daysAgo(10), 2)
	seedConcept(g, "wasm", 1.0, daysAgo(30), 1)
	seedConcept(g, "forgotten", 2.0, daysAgo(90), 1)
	seedConcept(g, "noise", 0.01, daysAgo(5), 1) // below candidate threshold
	return g
}

func TestSuggestDeterministicForSeed(t *testing.T) {
	g := suggestGraph()

	first := Suggest(g, 5, nil, 42)
	second := Suggest(g, 5, nil, 42)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different rankings:\n%v\n%v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("expected suggestions")
	}
}

func TestSuggestDifferentSeedsDiffer(t *testing.T) {
	g := suggestGraph()
	a := Suggest(g, 5, nil, 1)
	b := Suggest(g, 5, nil, 2)
	// Scores are sampled, so at least one score should move between seeds.
	same := true
	for i := range a {
		if i < len(b) && a[i].Score != b[i].Score {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical scores")
	}
}

func TestSuggestExcludesIDs(t *testing.T) {
	g := suggestGraph()
	out := Suggest(g, 10, []string{"go", "raft"}, 7)
	for _, s := range out {
		if s.ID == "go" || s.ID == "raft" {
			t.Errorf("excluded id %s appeared in output", s.ID)
		}
	}
}

func TestSuggestFiltersLowWeight(t *testing.T) {
	g := suggestGraph()
	out := Suggest(g, 10, nil, 7)
	for _, s := range out {
		if s.ID == "noise" {
			t.Error("concept below weight threshold appeared in output")
		}
	}
}

func TestSuggestLimitsToN(t *testing.T) {
	g := suggestGraph()
	out := Suggest(g, 2, nil, 7)
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
}

func TestSuggestSortedByScoreDescending(t *testing.T) {
	g := suggestGraph()
	out := Suggest(g, 10, nil, 99)
	for i := 1; i < len(out); i++ {
		if out[i].Score > out[i-1].Score {
			t.Errorf("scores not descending: %f before %f", out[i-1].Score, out[i].Score)
		}
	}
}

func TestSuggestDoesNotMutateWeights(t *testing.T) {
	g := suggestGraph()
	before := g.Concepts["forgotten"].Weight
	Suggest(g, 10, nil, 7)
	if g.Concepts["forgotten"].Weight != before {
		t.Error("recency preview must not mutate stored weight")
	}
}

func TestSuggestReasons(t *testing.T) {
	g := New()
	seedConcept(g, "stale", 2.0, daysAgo(90), 2)
	stale := g.Concepts["stale"]
	stale.Related = []string{"x"}

	seedConcept(g, "lonely", 2.0, daysAgo(5), 2)

	seedConcept(g, "favorite", 2.0, daysAgo(5), 2)
	fav := g.Concepts["favorite"]
	fav.Related = []string{"x"}
	fav.Bandit = Bandit{Alpha: 9, Beta: 1}

	seedConcept(g, "steady", 2.0, daysAgo(5), 2)
	g.Concepts["steady"].Related = []string{"x"}

	want := map[string]string{
		"stale":    "revisit",
		"lonely":   "unexplored connection",
		"favorite": "strong interest",
		"steady":   "balanced exploration",
	}
	for _, s := range Suggest(g, 10, nil, 3) {
		if want[s.ID] != s.Reason {
			t.Errorf("%s reason = %q, want %q", s.ID, s.Reason, want[s.ID])
		}
	}
}

func TestBetaSampleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := betaSample(rng, 0.1, 0.1)
		if v < 0 || v > 1 {
			t.Fatalf("beta sample %f out of [0,1]", v)
		}
	}
}

func TestBetaSampleSkew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sum := 0.0
	const n = 2000
	for i := 0; i < n; i++ {
		sum += betaSample(rng, 8, 2)
	}
	mean := sum / n
	// Beta(8,2) has mean 0.8.
	if mean < 0.75 || mean > 0.85 {
		t.Errorf("mean of Beta(8,2) samples = %f, want ≈0.8", mean)
	}
}
