package graph

import "testing"

func TestRecordCooccurrencesIdempotentPairing(t *testing.T) {
	g := New()
	RecordCooccurrences(g, []string{"zig", "ada"})
	RecordCooccurrences(g, []string{"zig", "ada"})

	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(g.Edges))
	}
	e := g.Edges[0]
	if e.Src != "ada" || e.Tgt != "zig" {
		t.Errorf("edge = %s-%s, want canonical ada-zig", e.Src, e.Tgt)
	}
	if e.W != 2 {
		t.Errorf("w = %d, want 2", e.W)
	}
	if e.LastSeen != Today() {
		t.Errorf("lastSeen = %q, want today", e.LastSeen)
	}
}

func TestRecordCooccurrencesCombinatorialPairs(t *testing.T) {
	g := New()
	RecordCooccurrences(g, []string{"a", "b", "c"})
	// All unordered pairs, not just adjacent ones: a-b, a-c, b-c.
	if len(g.Edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(g.Edges))
	}
	for _, e := range g.Edges {
		if e.Src >= e.Tgt {
			t.Errorf("edge %s-%s not in canonical order", e.Src, e.Tgt)
		}
		if e.W != 1 {
			t.Errorf("edge %s-%s w = %d, want 1", e.Src, e.Tgt, e.W)
		}
	}
}

func TestRecordCooccurrencesDedupesInput(t *testing.T) {
	g := New()
	RecordCooccurrences(g, []string{"go", "go", "rust", "go"})
	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1 (input deduped)", len(g.Edges))
	}
	if g.Edges[0].W != 1 {
		t.Errorf("w = %d, want 1", g.Edges[0].W)
	}
}

func TestRecordCooccurrencesSingleConcept(t *testing.T) {
	g := New()
	RecordCooccurrences(g, []string{"solo"})
	if len(g.Edges) != 0 {
		t.Errorf("edges = %d, want 0 for single-element session", len(g.Edges))
	}
}
