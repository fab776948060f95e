package graph

// ConceptInput is a caller-supplied concept record. Concept extraction is
// external; ids and labels arrive ready-made.
type ConceptInput struct {
	ID       string            `json:"id"`
	Labels   map[string]string `json:"labels,omitempty"`
	Category string            `json:"category,omitempty"`
	Broader  []string          `json:"broader,omitempty"`
	Narrower []string          `json:"narrower,omitempty"`
	Related  []string          `json:"related,omitempty"`
}

// AddConcepts creates or reinforces concepts. New concepts start at weight
// 1.0 with a Beta(1,1) prior; existing ones gain a unit of weight, a session
// count, and today's lastSeen. Relation sets merge by union, and supplied
// labels win on key collision. Relation ids are accepted as-is; there is no
// referential check against the concept map.
func AddConcepts(g *Graph, inputs []ConceptInput) {
	today := Today()
	for _, in := range inputs {
		if in.ID == "" {
			continue
		}
		if existing, ok := g.Concepts[in.ID]; ok {
			existing.Weight += 1.0
			existing.SessionCount++
			existing.LastSeen = today
			existing.Broader = sortedUnion(existing.Broader, in.Broader)
			existing.Narrower = sortedUnion(existing.Narrower, in.Narrower)
			existing.Related = sortedUnion(existing.Related, in.Related)
			if len(in.Labels) > 0 {
				if existing.Labels == nil {
					existing.Labels = map[string]string{}
				}
				for k, v := range in.Labels {
					existing.Labels[k] = v
				}
			}
			continue
		}

		labels := in.Labels
		if len(labels) == 0 {
			labels = map[string]string{"en": in.ID}
		}
		category := in.Category
		if category == "" {
			category = "general"
		}
		g.Concepts[in.ID] = &Concept{
			Labels:       labels,
			Category:     category,
			Weight:       1.0,
			LastSeen:     today,
			SessionCount: 1,
			Broader:      sortedUnion(nil, in.Broader),
			Narrower:     sortedUnion(nil, in.Narrower),
			Related:      sortedUnion(nil, in.Related),
			Bandit:       Bandit{Alpha: 1, Beta: 1},
		}
	}
}

// UpdateBandit records engagement feedback for a concept: engaged bumps
// alpha, ignored bumps beta. Unknown ids are a silent no-op.
func UpdateBandit(g *Graph, id string, engaged bool) {
	c, ok := g.Concepts[id]
	if !ok {
		return
	}
	if c.Bandit.Alpha == 0 && c.Bandit.Beta == 0 {
		c.Bandit = Bandit{Alpha: 1, Beta: 1}
	}
	if engaged {
		c.Bandit.Alpha++
	} else {
		c.Bandit.Beta++
	}
}
