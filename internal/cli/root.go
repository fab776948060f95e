package cli

import (
	"fmt"
	"os"

	"github.com/hollowoak/wander/internal/config"
	"github.com/hollowoak/wander/internal/graph"
	"github.com/hollowoak/wander/internal/history"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wander",
	Short: "Personal interest graph engine",
	Long:  "Wander tracks the concepts you explore, decays the ones you abandon, and suggests where to go next. Single Go binary, local-first storage.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(addConceptsCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(banditCmd)
	rootCmd.AddCommand(decayCmd)
	rootCmd.AddCommand(communitiesCmd)
	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(markdownCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(limitsCmd)
}

// loadConfig reads the config file, honoring the WANDER_CONFIG env override.
func loadConfig() (config.Config, error) {
	path := os.Getenv("WANDER_CONFIG")
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// openStore resolves the graph store for CLI commands. WANDER_GRAPH overrides
// the configured path.
func openStore(cfg config.Config) (*graph.Store, error) {
	path := os.Getenv("WANDER_GRAPH")
	if path == "" {
		path = cfg.Graph.Path
	}
	if path == "" {
		var err error
		path, err = graph.DefaultGraphPath()
		if err != nil {
			return nil, fmt.Errorf("resolve graph path: %w", err)
		}
	}
	s := graph.NewStore(path)
	s.LegacyMarkdown = cfg.Graph.LegacyMarkdown
	return s, nil
}

// openDB opens the session-history database for CLI commands. WANDER_DB
// overrides the configured path.
func openDB(cfg config.Config) (*history.DB, error) {
	path := os.Getenv("WANDER_DB")
	if path == "" {
		path = cfg.Database.Path
	}
	if path == "" {
		var err error
		path, err = history.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	return history.Open(path)
}

func configLimits(cfg config.Config) history.Limits {
	return history.Limits{
		Threshold:     cfg.Limits.Threshold,
		DailyTokens:   cfg.Limits.DailyTokens,
		WeeklyTokens:  cfg.Limits.WeeklyTokens,
		SessionTokens: cfg.Limits.SessionTokens,
	}
}
