// Package report renders the interest graph for humans: the user-interests
// Markdown file, the compact graph brief injected into session templates,
// and a standalone HTML report.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hollowoak/wander/internal/graph"
)

// markdownSeed fixes the suggestion ordering in generated Markdown so the
// file is stable across regenerations of an unchanged graph.
const markdownSeed = 42

// Title-case exceptions for category headings.
var categoryTitles = map[string]string{
	"ai-ml":               "AI & ML",
	"aiops-observability": "AIOps & Observability",
}

type categoryGroup struct {
	name     string
	concepts []conceptEntry
}

type conceptEntry struct {
	id string
	c  *graph.Concept
}

// Markdown renders the user-interests file from the graph: YAML-ish
// frontmatter, one section per category with keywords sorted by weight,
// then suggested next directions from a fixed-seed ranking.
func Markdown(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("version: 2\n")
	fmt.Fprintf(&b, "last_updated: %s\n", g.Meta.LastUpdated)
	fmt.Fprintf(&b, "session_count: %d\n", g.Meta.TotalSessions)
	b.WriteString("source: auto-generated from interest-graph.json\n")
	b.WriteString("---\n\n")
	b.WriteString("# User Interests\n\n")

	for _, group := range groupByCategory(g) {
		fmt.Fprintf(&b, "## %s\n", categoryTitle(group.name))

		ids := make([]string, len(group.concepts))
		for i, e := range group.concepts {
			ids[i] = e.id
		}
		fmt.Fprintf(&b, "- **keywords**: [%s]\n", strings.Join(ids, ", "))

		top := group.concepts
		if len(top) > 5 {
			top = top[:5]
		}
		labels := make([]string, len(top))
		for i, e := range top {
			labels[i] = e.c.Label("en", e.id)
		}
		fmt.Fprintf(&b, "- **description**: Topics related to %s\n\n", strings.Join(labels, ", "))
	}

	b.WriteString("---\n\n")
	b.WriteString("## Suggested Next Directions\n\n")

	suggestions := graph.Suggest(g, 10, nil, markdownSeed)
	if len(suggestions) == 0 {
		b.WriteString("No suggestions yet — explore more topics to build your graph.\n")
		return b.String()
	}
	for i, s := range suggestions {
		label := s.ID
		if c, ok := g.Concepts[s.ID]; ok {
			label = c.Label("en", s.ID)
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, label, s.Reason)
	}
	b.WriteString("\n")
	return b.String()
}

// groupByCategory buckets concepts per category, each bucket sorted by
// weight descending, with "general" last and the rest alphabetical.
func groupByCategory(g *graph.Graph) []categoryGroup {
	byCat := map[string][]conceptEntry{}
	for id, c := range g.Concepts {
		cat := c.Category
		if cat == "" {
			cat = "general"
		}
		byCat[cat] = append(byCat[cat], conceptEntry{id: id, c: c})
	}

	var names []string
	for name := range byCat {
		if name != "general" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := byCat["general"]; ok {
		names = append(names, "general")
	}

	groups := make([]categoryGroup, 0, len(names))
	for _, name := range names {
		entries := byCat[name]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].c.Weight != entries[j].c.Weight {
				return entries[i].c.Weight > entries[j].c.Weight
			}
			return entries[i].id < entries[j].id
		})
		groups = append(groups, categoryGroup{name: name, concepts: entries})
	}
	return groups
}

func categoryTitle(cat string) string {
	if t, ok := categoryTitles[strings.ToLower(cat)]; ok {
		return t
	}
	words := strings.Split(strings.ReplaceAll(cat, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
