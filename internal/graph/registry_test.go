package graph

import (
	"reflect"
	"testing"
)

func TestAddConceptsCreatesDefaults(t *testing.T) {
	g := New()
	AddConcepts(g, []ConceptInput{{ID: "wasm"}})

	c := g.Concepts["wasm"]
	if c == nil {
		t.Fatal("concept not created")
	}
	if c.Weight != 1.0 {
		t.Errorf("weight = %f, want 1.0", c.Weight)
	}
	if c.SessionCount != 1 {
		t.Errorf("sessionCount = %d, want 1", c.SessionCount)
	}
	if c.LastSeen != Today() {
		t.Errorf("lastSeen = %q, want today", c.LastSeen)
	}
	if c.Category != "general" {
		t.Errorf("category = %q, want general", c.Category)
	}
	if c.Labels["en"] != "wasm" {
		t.Errorf("labels = %v, want en fallback to id", c.Labels)
	}
	if c.Bandit.Alpha != 1 || c.Bandit.Beta != 1 {
		t.Errorf("bandit = %+v, want {1 1}", c.Bandit)
	}
}

func TestAddConceptsReinforces(t *testing.T) {
	g := New()
	AddConcepts(g, []ConceptInput{{ID: "raft", Category: "distributed-systems"}})
	AddConcepts(g, []ConceptInput{{ID: "raft"}})

	c := g.Concepts["raft"]
	if c.Weight != 2.0 {
		t.Errorf("weight = %f, want 2.0", c.Weight)
	}
	if c.SessionCount != 2 {
		t.Errorf("sessionCount = %d, want 2", c.SessionCount)
	}
	// Reinforcement never resets the category.
	if c.Category != "distributed-systems" {
		t.Errorf("category = %q, want distributed-systems", c.Category)
	}
}

func TestAddConceptsMergesRelationsSorted(t *testing.T) {
	g := New()
	AddConcepts(g, []ConceptInput{{ID: "go", Related: []string{"rust", "zig"}}})
	AddConcepts(g, []ConceptInput{{ID: "go", Related: []string{"c", "rust"}}})

	got := g.Concepts["go"].Related
	want := []string{"c", "rust", "zig"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("related = %v, want %v", got, want)
	}
}

func TestAddConceptsMergesLabels(t *testing.T) {
	g := New()
	AddConcepts(g, []ConceptInput{{ID: "go", Labels: map[string]string{"en": "Go", "de": "Go-Sprache"}}})
	AddConcepts(g, []ConceptInput{{ID: "go", Labels: map[string]string{"en": "Golang"}}})

	labels := g.Concepts["go"].Labels
	if labels["en"] != "Golang" {
		t.Errorf("en label = %q, want Golang (new wins)", labels["en"])
	}
	if labels["de"] != "Go-Sprache" {
		t.Errorf("de label = %q, want Go-Sprache (old kept)", labels["de"])
	}
}

func TestAddConceptsAcceptsUnknownRelationIDs(t *testing.T) {
	g := New()
	AddConcepts(g, []ConceptInput{{ID: "go", Broader: []string{"never-registered"}}})
	if got := g.Concepts["go"].Broader; len(got) != 1 || got[0] != "never-registered" {
		t.Errorf("broader = %v, want [never-registered]", got)
	}
}

func TestUpdateBandit(t *testing.T) {
	g := New()
	seedConcept(g, "go", 1.0, Today(), 1)

	UpdateBandit(g, "go", true)
	UpdateBandit(g, "go", true)
	UpdateBandit(g, "go", false)

	b := g.Concepts["go"].Bandit
	if b.Alpha != 3 {
		t.Errorf("alpha = %f, want 3", b.Alpha)
	}
	if b.Beta != 2 {
		t.Errorf("beta = %f, want 2", b.Beta)
	}
}

func TestUpdateBanditUnknownIDIsNoop(t *testing.T) {
	g := New()
	UpdateBandit(g, "ghost", true) // must not panic or create a concept
	if len(g.Concepts) != 0 {
		t.Error("unknown id must not create a concept")
	}
}

func TestUpdateBanditDefaultsAbsentState(t *testing.T) {
	g := New()
	seedConcept(g, "go", 1.0, Today(), 1)
	g.Concepts["go"].Bandit = Bandit{} // as if loaded from an older document

	UpdateBandit(g, "go", true)
	b := g.Concepts["go"].Bandit
	if b.Alpha != 2 || b.Beta != 1 {
		t.Errorf("bandit = %+v, want {2 1} after defaulting to {1 1}", b)
	}
}
