package graph

import "sort"

// Gap is a pair of concepts with multiple shared neighbors but no direct
// connection, a candidate missing link worth exploring.
type Gap struct {
	A           string   `json:"a"`
	B           string   `json:"b"`
	SharedCount int      `json:"sharedCount"`
	Shared      []string `json:"shared"`
}

// DefaultMaxGapNodes is the node-count ceiling for the pairwise gap scan.
const DefaultMaxGapNodes = 500

// FindGaps scans all non-adjacent concept pairs for pairs sharing at least
// two neighbors, ranked by shared-neighbor count. The adjacency combines
// co-occurrence edges with the explicit broader/narrower/related relations
// in both directions. Graphs larger than maxNodes return an empty result
// immediately; the O(n²) scan is deliberately guarded, not unbounded.
func FindGaps(g *Graph, n, maxNodes int) []Gap {
	var nodes []string
	adj := map[string]map[string]bool{}
	link := func(a, b string) {
		if adj[a] == nil {
			adj[a] = map[string]bool{}
			nodes = append(nodes, a)
		}
		adj[a][b] = true
	}
	for _, e := range g.Edges {
		link(e.Src, e.Tgt)
		link(e.Tgt, e.Src)
	}
	for _, id := range g.sortedIDs() {
		c := g.Concepts[id]
		for _, rel := range [][]string{c.Broader, c.Narrower, c.Related} {
			for _, other := range rel {
				link(id, other)
				link(other, id)
			}
		}
	}

	if len(nodes) > maxNodes {
		return nil
	}

	var gaps []Gap
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if adj[a][b] {
				continue
			}

			var shared []string
			for nb := range adj[a] {
				if adj[b][nb] {
					shared = append(shared, nb)
				}
			}
			if len(shared) < 2 {
				continue
			}
			sort.Strings(shared)
			gaps = append(gaps, Gap{A: a, B: b, SharedCount: len(shared), Shared: shared})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].SharedCount > gaps[j].SharedCount
	})
	if len(gaps) > n {
		gaps = gaps[:n]
	}
	return gaps
}
