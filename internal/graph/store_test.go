package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "interest-graph.json"))
	g := s.Load()
	if len(g.Concepts) != 0 || len(g.Edges) != 0 {
		t.Error("expected empty graph for missing file")
	}
	if g.Meta.HalfLifeDays != 90 {
		t.Errorf("halfLifeDays = %f, want 90", g.Meta.HalfLifeDays)
	}
}

func TestLoadCorruptFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interest-graph.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	g := NewStore(path).Load()
	if len(g.Concepts) != 0 {
		t.Error("expected empty graph for corrupt file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "interest-graph.json")
	s := NewStore(path)

	g := New()
	seedConcept(g, "go", 2.5, daysAgo(3), 2)
	g.Concepts["go"].Related = []string{"rust"}
	g.Edges = append(g.Edges, Edge{Src: "go", Tgt: "rust", W: 4, LastSeen: daysAgo(3)})
	g.Meta.TotalSessions = 7

	if err := s.Save(g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if g.Meta.LastUpdated != Today() {
		t.Errorf("lastUpdated = %q, want today", g.Meta.LastUpdated)
	}

	loaded := s.Load()
	if loaded.Meta.TotalSessions != 7 {
		t.Errorf("totalSessions = %d, want 7", loaded.Meta.TotalSessions)
	}
	c := loaded.Concepts["go"]
	if c == nil {
		t.Fatal("concept go missing after round trip")
	}
	if c.Weight != 2.5 || c.SessionCount != 2 {
		t.Errorf("concept = weight %f sessions %d, want 2.5 / 2", c.Weight, c.SessionCount)
	}
	if len(c.Related) != 1 || c.Related[0] != "rust" {
		t.Errorf("related = %v, want [rust]", c.Related)
	}
	if len(loaded.Edges) != 1 || loaded.Edges[0].W != 4 {
		t.Errorf("edges = %v, want one edge with w=4", loaded.Edges)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "interest-graph.json"))
	if err := s.Save(New()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "interest-graph.json" {
		t.Errorf("dir entries = %v, want only interest-graph.json", entries)
	}
}

func TestLoadAutoMigratesLegacyMarkdown(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "user-interests.md")
	legacy := `---
version: 2
session_count: 12
---

# User Interests

## Distributed Systems
- **keywords**: [raft, consensus, gossip protocols]
- **description**: Topics related to Raft, consensus

## Suggested Next Directions

1. something (revisit)
`
	if err := os.WriteFile(md, []byte(legacy), 0644); err != nil {
		t.Fatalf("write legacy md: %v", err)
	}

	s := NewStore(filepath.Join(dir, "interest-graph.json"))
	s.LegacyMarkdown = md
	g := s.Load()

	if g.Meta.TotalSessions != 12 {
		t.Errorf("totalSessions = %d, want 12", g.Meta.TotalSessions)
	}
	for _, id := range []string{"raft", "consensus", "gossip-protocols"} {
		c := g.Concepts[id]
		if c == nil {
			t.Fatalf("concept %s missing after migration", id)
		}
		if c.Category != "distributed-systems" {
			t.Errorf("%s category = %q, want distributed-systems", id, c.Category)
		}
	}
	// Chain edges between adjacent keywords: raft-consensus, consensus-gossip.
	if len(g.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(g.Edges))
	}
	for _, e := range g.Edges {
		if e.Src >= e.Tgt {
			t.Errorf("edge %s-%s not in canonical order", e.Src, e.Tgt)
		}
	}

	// The migrated graph is persisted, so a second load skips migration.
	if _, err := os.Stat(s.Path); err != nil {
		t.Errorf("migrated graph not saved: %v", err)
	}
}
