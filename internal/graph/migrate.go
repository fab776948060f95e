package graph

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`^## (.+)`)
	keywordsRe = regexp.MustCompile(`^- \*\*keywords\*\*: \[(.+)\]`)
)

// Headings in the legacy file that are structure, not interest categories.
var skipHeadings = map[string]bool{
	"Recently Explored":         true,
	"Explored Topics Archive":   true,
	"Suggested Next Directions": true,
	"User Interests":            true,
}

// MigrateMarkdown parses a legacy user-interests.md file into a fresh graph.
// Category headings become concept categories, keyword lists become concepts,
// and adjacent keywords within one list get chain co-occurrence edges.
// The caller is responsible for saving the result.
func MigrateMarkdown(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read legacy markdown: %w", err)
	}
	content := string(raw)
	g := New()
	today := Today()

	// Frontmatter: only session_count carries over.
	inFM := false
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "---" {
			if inFM {
				break
			}
			inFM = true
			continue
		}
		if inFM {
			k, v, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			if strings.TrimSpace(k) == "session_count" {
				if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
					g.Meta.TotalSessions = n
				}
			}
		}
	}

	category := "general"
	skipping := false
	for _, line := range strings.Split(content, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[1])
			if skipHeadings[title] {
				skipping = true
				continue
			}
			skipping = false
			category = slugify(title)
			continue
		}
		if skipping {
			continue
		}

		m := keywordsRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		var keywords []string
		for _, kw := range strings.Split(m[1], ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}

		slugs := make([]string, len(keywords))
		for i, kw := range keywords {
			slug := slugify(kw)
			slugs[i] = slug
			if _, ok := g.Concepts[slug]; ok {
				continue
			}
			var broader []string
			if category != "general" {
				broader = []string{category}
			}
			g.Concepts[slug] = &Concept{
				Labels:       map[string]string{"en": kw},
				Category:     category,
				Weight:       1.0,
				LastSeen:     today,
				SessionCount: 1,
				Broader:      broader,
				Narrower:     []string{},
				Related:      []string{},
				Bandit:       Bandit{Alpha: 1, Beta: 1},
			}
		}

		// Chain edges between adjacent keywords in the list.
		for i := 0; i+1 < len(slugs); i++ {
			a, b := edgeKey(slugs[i], slugs[i+1])
			if a == b {
				continue
			}
			g.Edges = append(g.Edges, Edge{Src: a, Tgt: b, W: 1, LastSeen: today})
		}
	}

	g.Meta.LastUpdated = today
	return g, nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " & ", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
