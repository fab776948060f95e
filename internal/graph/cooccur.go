package graph

import "sort"

// RecordCooccurrences turns one session's concept set into pairwise edges.
// The input list is deduplicated, then every unordered pair gets its edge
// reinforced (or created at w=1). A single concept produces no edges.
// O(k²) in session concept count; k is small in practice.
func RecordCooccurrences(g *Graph, conceptIDs []string) {
	today := Today()

	uniq := make(map[string]bool, len(conceptIDs))
	for _, id := range conceptIDs {
		if id != "" {
			uniq[id] = true
		}
	}
	ids := make([]string, 0, len(uniq))
	for id := range uniq {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type pair struct{ a, b string }
	index := make(map[pair]int, len(g.Edges))
	for i, e := range g.Edges {
		a, b := edgeKey(e.Src, e.Tgt)
		index[pair{a, b}] = i
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := edgeKey(ids[i], ids[j])
			if idx, ok := index[pair{a, b}]; ok {
				g.Edges[idx].W++
				g.Edges[idx].LastSeen = today
				continue
			}
			g.Edges = append(g.Edges, Edge{Src: a, Tgt: b, W: 1, LastSeen: today})
			index[pair{a, b}] = len(g.Edges) - 1
		}
	}
}
