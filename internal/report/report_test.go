package report

import (
	"strings"
	"testing"

	"github.com/hollowoak/wander/internal/graph"
	"github.com/hollowoak/wander/internal/history"
)

func reportGraph() *graph.Graph {
	g := graph.New()
	g.Meta.TotalSessions = 9
	g.Meta.LastUpdated = "2026-08-20"
	graph.AddConcepts(g, []graph.ConceptInput{
		{ID: "raft", Labels: map[string]string{"en": "Raft"}, Category: "distributed-systems"},
		{ID: "gossip", Labels: map[string]string{"en": "Gossip protocols"}, Category: "distributed-systems"},
		{ID: "wasm", Labels: map[string]string{"en": "WebAssembly"}},
	})
	// Reinforce raft so weights differ.
	graph.AddConcepts(g, []graph.ConceptInput{{ID: "raft"}})
	graph.RecordCooccurrences(g, []string{"raft", "gossip"})
	graph.RecordCooccurrences(g, []string{"raft", "gossip"})
	return g
}

func TestMarkdownStructure(t *testing.T) {
	md := Markdown(reportGraph())

	for _, want := range []string{
		"# User Interests",
		"session_count: 9",
		"## Distributed Systems",
		"## General",
		"## Suggested Next Directions",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// Keywords sorted by weight: raft (2.0) before gossip (1.0).
	if !strings.Contains(md, "- **keywords**: [raft, gossip]") {
		t.Errorf("keywords line wrong:\n%s", md)
	}
}

func TestMarkdownStableAcrossRuns(t *testing.T) {
	g := reportGraph()
	if Markdown(g) != Markdown(g) {
		t.Error("markdown output changed between runs of an unchanged graph")
	}
}

func TestMarkdownEmptyGraph(t *testing.T) {
	md := Markdown(graph.New())
	if !strings.Contains(md, "No suggestions yet") {
		t.Errorf("empty graph markdown missing placeholder:\n%s", md)
	}
}

func TestBriefSections(t *testing.T) {
	brief := Brief(reportGraph(), DefaultBriefOptions())

	if !strings.Contains(brief, "Top Concepts:") {
		t.Error("brief missing Top Concepts")
	}
	if !strings.Contains(brief, "Raft (category: distributed-systems, weight: 2.0)") {
		t.Errorf("brief missing weighted concept line:\n%s", brief)
	}
	if !strings.Contains(brief, "Knowledge Communities:") {
		t.Errorf("brief missing communities:\n%s", brief)
	}
}

func TestBriefEmptyGraph(t *testing.T) {
	if got := Brief(graph.New(), DefaultBriefOptions()); got != "(No interest graph data available)" {
		t.Errorf("empty brief = %q", got)
	}
}

func TestBriefGapsSection(t *testing.T) {
	g := graph.New()
	graph.AddConcepts(g, []graph.ConceptInput{{ID: "a"}, {ID: "b"}, {ID: "d"}, {ID: "e"}})
	g.Edges = []graph.Edge{
		{Src: "a", Tgt: "d", W: 1},
		{Src: "a", Tgt: "e", W: 1},
		{Src: "b", Tgt: "d", W: 1},
		{Src: "b", Tgt: "e", W: 1},
	}

	brief := Brief(g, DefaultBriefOptions())
	if !strings.Contains(brief, "Structural Gaps:") {
		t.Fatalf("brief missing gaps section:\n%s", brief)
	}
	if !strings.Contains(brief, "a <-> b (2 shared: d, e)") {
		t.Errorf("gap line wrong:\n%s", brief)
	}
}

func TestWriteHTML(t *testing.T) {
	var b strings.Builder
	ended := int64(1_700_000_900_000)
	sessions := []history.Session{
		{Slug: "raft-deep", Topic: "Raft deep dive", Mode: "deep", Status: "completed",
			StartedAt: 1_700_000_000_000, EndedAt: &ended},
	}

	if err := WriteHTML(&b, reportGraph(), sessions); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	html := b.String()

	for _, want := range []string{
		"<title>Wander: Interest Graph Report</title>",
		"Raft deep dive",
		"<code>raft</code>",
		"Knowledge Communities",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWriteHTMLEmptyGraph(t *testing.T) {
	var b strings.Builder
	if err := WriteHTML(&b, graph.New(), nil); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if !strings.Contains(b.String(), "The graph is empty.") {
		t.Error("empty-graph placeholder missing")
	}
}
