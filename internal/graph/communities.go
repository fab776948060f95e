package graph

// maxPropagationRounds bounds label propagation; small graphs converge in a
// handful of rounds, the cap just guarantees termination.
const maxPropagationRounds = 10

// DetectCommunities groups concepts by label propagation over co-occurrence
// edges with w >= minEdgeWeight. Every node starts labelled with its own id;
// each round it adopts the most frequent label among its neighbors, ties
// going to the label seen first. Isolated nodes never appear in the result.
//
// The adjacency is kept as an insertion-ordered node slice plus per-node
// neighbor slices; iterating a bare map here would randomize the tie-break
// and make the grouping irreproducible.
func DetectCommunities(g *Graph, minEdgeWeight int) map[string][]string {
	var nodes []string
	adj := map[string][]string{}
	addNeighbor := func(a, b string) {
		if _, ok := adj[a]; !ok {
			nodes = append(nodes, a)
		}
		adj[a] = append(adj[a], b)
	}
	for _, e := range g.Edges {
		if e.W < minEdgeWeight {
			continue
		}
		addNeighbor(e.Src, e.Tgt)
		addNeighbor(e.Tgt, e.Src)
	}

	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n] = n
	}

	for round := 0; round < maxPropagationRounds; round++ {
		changed := false
		for _, n := range nodes {
			neighbors := adj[n]
			if len(neighbors) == 0 {
				continue
			}

			counts := map[string]int{}
			var order []string
			for _, nb := range neighbors {
				l, ok := labels[nb]
				if !ok {
					l = nb
				}
				if counts[l] == 0 {
					order = append(order, l)
				}
				counts[l]++
			}

			best := order[0]
			for _, l := range order[1:] {
				if counts[l] > counts[best] {
					best = l
				}
			}

			if labels[n] != best {
				labels[n] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	communities := map[string][]string{}
	for _, n := range nodes {
		l := labels[n]
		communities[l] = append(communities[l], n)
	}
	return communities
}
