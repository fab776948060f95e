package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hollowoak/wander/internal/graph"
)

// BriefOptions bounds the brief's three sections.
type BriefOptions struct {
	MaxConcepts    int
	MaxCommunities int
	MaxGaps        int
}

// DefaultBriefOptions matches what session templates expect.
func DefaultBriefOptions() BriefOptions {
	return BriefOptions{MaxConcepts: 15, MaxCommunities: 5, MaxGaps: 5}
}

// Brief renders the compact plain-text graph summary injected into
// exploration templates: top concepts by weight, multi-member knowledge
// communities, and structural gaps.
func Brief(g *graph.Graph, opts BriefOptions) string {
	if len(g.Concepts) == 0 {
		return "(No interest graph data available)"
	}

	var b strings.Builder

	type weighted struct {
		id string
		c  *graph.Concept
	}
	var all []weighted
	for id, c := range g.Concepts {
		all = append(all, weighted{id, c})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].c.Weight != all[j].c.Weight {
			return all[i].c.Weight > all[j].c.Weight
		}
		return all[i].id < all[j].id
	})
	if len(all) > opts.MaxConcepts {
		all = all[:opts.MaxConcepts]
	}

	b.WriteString("Top Concepts:\n")
	for _, w := range all {
		cat := w.c.Category
		if cat == "" {
			cat = "general"
		}
		fmt.Fprintf(&b, "  - %s (category: %s, weight: %.1f)\n", w.c.Label("en", w.id), cat, w.c.Weight)
	}

	// Communities at min weight 1; the brief is inclusive on purpose.
	communities := graph.DetectCommunities(g, 1)
	type community struct {
		label   string
		members []string
	}
	var multi []community
	for label, members := range communities {
		if len(members) > 1 {
			multi = append(multi, community{label, members})
		}
	}
	sort.SliceStable(multi, func(i, j int) bool {
		if len(multi[i].members) != len(multi[j].members) {
			return len(multi[i].members) > len(multi[j].members)
		}
		return multi[i].label < multi[j].label
	})
	if len(multi) > opts.MaxCommunities {
		multi = multi[:opts.MaxCommunities]
	}
	if len(multi) > 0 {
		b.WriteString("\nKnowledge Communities:\n")
		for _, comm := range multi {
			members := append([]string(nil), comm.members...)
			sort.Strings(members)
			display := members
			if len(display) > 8 {
				display = display[:8]
			}
			line := strings.Join(display, ", ")
			if len(members) > 8 {
				line += fmt.Sprintf(", ... (%d total)", len(members))
			}
			fmt.Fprintf(&b, "  - [%s] %s\n", comm.label, line)
		}
	}

	gaps := graph.FindGaps(g, opts.MaxGaps, graph.DefaultMaxGapNodes)
	if len(gaps) > 0 {
		b.WriteString("\nStructural Gaps:\n")
		for _, gap := range gaps {
			shared := gap.Shared
			suffix := ""
			if len(shared) > 3 {
				shared = shared[:3]
				suffix = ", ..."
			}
			fmt.Fprintf(&b, "  - %s <-> %s (%d shared: %s%s)\n",
				gap.A, gap.B, gap.SharedCount, strings.Join(shared, ", "), suffix)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
