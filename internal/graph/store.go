package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the whole graph document as a single JSON file.
// The contract is load-whole / mutate-in-memory / save-whole: there are no
// partial updates, and the last saver wins. Save goes through a temp file
// and rename so a crash never leaves a half-written document behind.
type Store struct {
	// Path is the graph JSON file location.
	Path string
	// LegacyMarkdown, when set, is checked on first Load: if the graph file
	// is absent but this Markdown file exists, it is migrated in place.
	LegacyMarkdown string
}

// DefaultGraphPath returns the default graph location: ~/.wander/interest-graph.json
func DefaultGraphPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".wander", "interest-graph.json"), nil
}

// NewStore creates a store for the given graph file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the graph document. An absent file or invalid JSON yields an
// empty graph rather than an error. When the graph file does not exist but
// a legacy Markdown interests file does, it is migrated automatically.
func (s *Store) Load() *Graph {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		if s.LegacyMarkdown != "" {
			if _, err := os.Stat(s.LegacyMarkdown); err == nil {
				if g, err := MigrateMarkdown(s.LegacyMarkdown); err == nil {
					s.Save(g)
					return g
				}
			}
		}
		return New()
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return New()
	}

	g := New()
	if err := json.Unmarshal(data, g); err != nil {
		return New()
	}
	if g.Concepts == nil {
		g.Concepts = map[string]*Concept{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	return g
}

// Save stamps meta.lastUpdated and overwrites the whole document atomically.
func (s *Store) Save(g *Graph) error {
	g.Meta.LastUpdated = Today()

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create graph dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".interest-graph-*.json")
	if err != nil {
		return fmt.Errorf("create temp graph file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write graph: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close graph: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename graph: %w", err)
	}
	return nil
}
