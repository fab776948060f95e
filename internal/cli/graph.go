package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hollowoak/wander/internal/graph"
	"github.com/hollowoak/wander/internal/history"
	"github.com/hollowoak/wander/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	recordCmd.Flags().StringVarP(&recordCategory, "category", "c", "", "Category for new concepts")
	recordCmd.Flags().StringSliceVar(&recordRelated, "related", nil, "Related concept ids to attach to each keyword")

	suggestCmd.Flags().IntVarP(&suggestN, "limit", "n", 5, "Maximum number of suggestions")
	suggestCmd.Flags().Int64Var(&suggestSeed, "seed", 0, "Sampling seed (0 uses the clock)")
	suggestCmd.Flags().StringSliceVar(&suggestExclude, "exclude", nil, "Concept ids to skip")

	communitiesCmd.Flags().IntVar(&communitiesMinWeight, "min-weight", 2, "Minimum edge weight to follow")

	gapsCmd.Flags().IntVarP(&gapsN, "limit", "n", 5, "Maximum number of gaps")
	gapsCmd.Flags().IntVar(&gapsMaxNodes, "max-nodes", graph.DefaultMaxGapNodes, "Skip gap analysis above this node count")

	markdownCmd.Flags().StringVarP(&markdownOut, "output", "o", "", "Write to a file instead of stdout")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Output format: markdown, html, or json")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to a file instead of stdout")
}

// --- record command ---

var (
	recordCategory string
	recordRelated  []string
)

var recordCmd = &cobra.Command{
	Use:   "record [keywords...]",
	Short: "Record an exploration session",
	Long:  "Upsert each keyword as a concept, link their co-occurrences, and bump the session counter.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	inputs := make([]graph.ConceptInput, 0, len(args))
	for _, id := range args {
		inputs = append(inputs, graph.ConceptInput{
			ID:       id,
			Category: recordCategory,
			Related:  recordRelated,
		})
	}

	g := store.Load()
	graph.AddConcepts(g, inputs)
	graph.RecordCooccurrences(g, args)
	g.Meta.TotalSessions++

	if err := store.Save(g); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}

	fmt.Printf("Recorded session %d: %d concepts, %d edges\n",
		g.Meta.TotalSessions, len(g.Concepts), len(g.Edges))
	return nil
}

// --- add-concepts command ---

var addConceptsCmd = &cobra.Command{
	Use:   "add-concepts [json-file]",
	Short: "Upsert concepts from a JSON array",
	Long:  "Read a JSON array of concept records (id, labels, category, broader/narrower/related) from a file, or from stdin when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAddConcepts,
}

func runAddConcepts(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var inputs []graph.ConceptInput
	if err := json.NewDecoder(in).Decode(&inputs); err != nil {
		return fmt.Errorf("decode concepts: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	g := store.Load()
	graph.AddConcepts(g, inputs)
	if err := store.Save(g); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}

	fmt.Printf("Graph now holds %d concepts\n", len(g.Concepts))
	return nil
}

// --- suggest command ---

var (
	suggestN       int
	suggestSeed    int64
	suggestExclude []string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest concepts to explore next",
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	seed := suggestSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := store.Load()
	suggestions := graph.Suggest(g, suggestN, suggestExclude, seed)
	if len(suggestions) == 0 {
		fmt.Println("No suggestions yet. Record some sessions first.")
		return nil
	}

	for i, s := range suggestions {
		fmt.Printf("%d. %s (%.3f) - %s\n", i+1, s.ID, s.Score, s.Reason)
	}
	return nil
}

// --- bandit command ---

var banditCmd = &cobra.Command{
	Use:   "bandit [concept-id] [engaged|skipped]",
	Short: "Record suggestion feedback",
	Long:  "Update a concept's bandit state: engaged bumps alpha, skipped bumps beta.",
	Args:  cobra.ExactArgs(2),
	RunE:  runBandit,
}

func runBandit(cmd *cobra.Command, args []string) error {
	id := args[0]
	var engaged bool
	switch strings.ToLower(args[1]) {
	case "engaged":
		engaged = true
	case "skipped":
		engaged = false
	default:
		return fmt.Errorf("verdict must be engaged or skipped, got %q", args[1])
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	g := store.Load()
	graph.UpdateBandit(g, id, engaged)
	if err := store.Save(g); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}

	if c, ok := g.Concepts[id]; ok {
		fmt.Printf("%s: alpha=%.0f beta=%.0f\n", id, c.Bandit.Alpha, c.Bandit.Beta)
	} else {
		fmt.Printf("%s: not in graph (no-op)\n", id)
	}
	return nil
}

// --- decay command ---

var decayCmd = &cobra.Command{
	Use:   "decay",
	Short: "Apply time decay and prune faded concepts",
	RunE:  runDecay,
}

func runDecay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	g := store.Load()
	before := len(g.Concepts)
	graph.ApplyDecay(g)
	if err := store.Save(g); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}

	fmt.Printf("Pruned %d concepts, %d remaining\n", before-len(g.Concepts), len(g.Concepts))
	return nil
}

// --- communities command ---

var communitiesMinWeight int

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "Detect knowledge communities",
	RunE:  runCommunities,
}

func runCommunities(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	comms := graph.DetectCommunities(store.Load(), communitiesMinWeight)
	if len(comms) == 0 {
		fmt.Println("No communities found.")
		return nil
	}

	labels := make([]string, 0, len(comms))
	for label := range comms {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		fmt.Printf("%s: %s\n", label, strings.Join(comms[label], ", "))
	}
	return nil
}

// --- gaps command ---

var (
	gapsN        int
	gapsMaxNodes int
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Find structural gaps between unconnected concepts",
	RunE:  runGaps,
}

func runGaps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	gaps := graph.FindGaps(store.Load(), gapsN, gapsMaxNodes)
	if len(gaps) == 0 {
		fmt.Println("No gaps found.")
		return nil
	}

	for _, gap := range gaps {
		fmt.Printf("%s <-> %s (%d shared: %s)\n", gap.A, gap.B, gap.SharedCount, strings.Join(gap.Shared, ", "))
	}
	return nil
}

// --- brief command ---

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Print a compact graph summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		fmt.Println(report.Brief(store.Load(), report.DefaultBriefOptions()))
		return nil
	},
}

// --- markdown command ---

var markdownOut string

var markdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Render the user-interests markdown document",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}

		md := report.Markdown(store.Load())
		if markdownOut == "" {
			fmt.Print(md)
			return nil
		}
		if err := os.WriteFile(markdownOut, []byte(md), 0644); err != nil {
			return fmt.Errorf("write %s: %w", markdownOut, err)
		}
		fmt.Printf("Wrote %s\n", markdownOut)
		return nil
	},
}

// --- export command ---

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the graph as markdown, html, or json",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	g := store.Load()

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "markdown", "md":
		_, err = fmt.Fprint(out, report.Markdown(g))
	case "html":
		// Session history enriches the report but is optional here.
		var sessions []history.Session
		if db, dbErr := openDB(cfg); dbErr == nil {
			sessions, _ = db.RecentSessions(20)
			db.Close()
		}
		err = report.WriteHTML(out, g, sessions)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(g)
	default:
		return fmt.Errorf("unknown format %q (want markdown, html, or json)", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", exportFormat, err)
	}
	return nil
}

// --- migrate command ---

var migrateCmd = &cobra.Command{
	Use:   "migrate [markdown-file]",
	Short: "Migrate a legacy markdown interests file into the graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	g, err := graph.MigrateMarkdown(args[0])
	if err != nil {
		return fmt.Errorf("migrate %s: %w", args[0], err)
	}
	if err := store.Save(g); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}

	fmt.Printf("Migrated %d concepts, %d edges from %s\n", len(g.Concepts), len(g.Edges), args[0])
	return nil
}
