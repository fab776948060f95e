package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/hollowoak/wander/internal/graph"
	"github.com/hollowoak/wander/internal/history"
)

//go:embed report.html.tmpl
var templateFS embed.FS

var reportTmpl = template.Must(template.ParseFS(templateFS, "report.html.tmpl"))

// htmlConcept is one row of the report's concept table.
type htmlConcept struct {
	ID       string
	Label    string
	Category string
	Weight   float64
	Sessions int
	LastSeen string
}

type htmlCommunity struct {
	Label   string
	Members []string
}

type htmlGap struct {
	A, B   string
	Shared []string
}

type htmlSession struct {
	Icon     string
	Topic    string
	Mode     string
	Status   string
	Duration string
	Started  string
}

type reportData struct {
	Generated     string
	TotalSessions int
	ConceptCount  int
	EdgeCount     int
	Concepts      []htmlConcept
	Suggestions   []graph.Suggestion
	Communities   []htmlCommunity
	Gaps          []htmlGap
	Sessions      []htmlSession
}

// WriteHTML renders the standalone HTML report for a graph and (optionally)
// recent session history. Sessions may be nil when no history DB is around.
func WriteHTML(w io.Writer, g *graph.Graph, sessions []history.Session) error {
	data := reportData{
		Generated:     time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		TotalSessions: g.Meta.TotalSessions,
		ConceptCount:  len(g.Concepts),
		EdgeCount:     len(g.Edges),
		Suggestions:   graph.Suggest(g, 10, nil, markdownSeed),
	}

	for id, c := range g.Concepts {
		data.Concepts = append(data.Concepts, htmlConcept{
			ID:       id,
			Label:    c.Label("en", id),
			Category: c.Category,
			Weight:   c.Weight,
			Sessions: c.SessionCount,
			LastSeen: c.LastSeen,
		})
	}
	sort.SliceStable(data.Concepts, func(i, j int) bool {
		if data.Concepts[i].Weight != data.Concepts[j].Weight {
			return data.Concepts[i].Weight > data.Concepts[j].Weight
		}
		return data.Concepts[i].ID < data.Concepts[j].ID
	})

	for label, members := range graph.DetectCommunities(g, 2) {
		if len(members) < 2 {
			continue
		}
		sorted := append([]string(nil), members...)
		sort.Strings(sorted)
		data.Communities = append(data.Communities, htmlCommunity{Label: label, Members: sorted})
	}
	sort.SliceStable(data.Communities, func(i, j int) bool {
		if len(data.Communities[i].Members) != len(data.Communities[j].Members) {
			return len(data.Communities[i].Members) > len(data.Communities[j].Members)
		}
		return data.Communities[i].Label < data.Communities[j].Label
	})

	for _, gap := range graph.FindGaps(g, 10, graph.DefaultMaxGapNodes) {
		data.Gaps = append(data.Gaps, htmlGap{A: gap.A, B: gap.B, Shared: gap.Shared})
	}

	now := time.Now()
	for _, s := range sessions {
		data.Sessions = append(data.Sessions, htmlSession{
			Icon:     history.StatusIcon(s.Status),
			Topic:    s.Topic,
			Mode:     s.Mode,
			Status:   s.Status,
			Duration: formatDuration(s.Duration(now)),
			Started:  time.UnixMilli(s.StartedAt).UTC().Format("2006-01-02 15:04"),
		})
	}

	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	if mins >= 60 {
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}
