package cli

import (
	"fmt"
	"time"

	"github.com/hollowoak/wander/internal/history"
	"github.com/spf13/cobra"
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of sessions to show")
	historyCmd.AddCommand(historyStartCmd)
	historyCmd.AddCommand(historyEndCmd)
	historyCmd.AddCommand(historyStatsCmd)

	historyStartCmd.Flags().StringVar(&startSlug, "slug", "", "Session slug (generated when empty)")
	historyStartCmd.Flags().StringVar(&startMode, "mode", "explore", "Session mode")
	historyStartCmd.Flags().StringVar(&startBudget, "budget", "", "Token budget label")
	historyStartCmd.Flags().StringVar(&startOutputDir, "output-dir", "", "Where session artifacts land")

	historyEndCmd.Flags().IntVar(&endIterations, "iterations", 1, "Iterations completed")
	historyEndCmd.Flags().StringVar(&endStatus, "status", "completed", "Final status")
	historyEndCmd.Flags().StringVar(&endReason, "reason", "", "Why the session ended")

	limitsCmd.Flags().Int64Var(&limitsSessionTokens, "session-tokens", 0, "In-flight session spend to include")
	limitsCmd.AddCommand(limitsRecordCmd)
}

// --- history command ---

var historyLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"dashboard"},
	Short:   "Show recent exploration sessions",
	RunE:    runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	sessions, err := db.RecentSessions(historyLimit)
	if err != nil {
		return fmt.Errorf("recent sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	now := time.Now()
	for _, s := range sessions {
		started := time.UnixMilli(s.StartedAt).Format("2006-01-02 15:04")
		dur := s.Duration(now).Round(time.Second)
		fmt.Printf("%s %-24s %-10s %s (%s, %d iterations)\n",
			history.StatusIcon(s.Status), s.Slug, s.Mode, started, dur, s.Iterations)
		if s.Topic != "" {
			fmt.Printf("     %s\n", s.Topic)
		}
		if s.Reason != "" {
			fmt.Printf("     reason: %s\n", s.Reason)
		}
	}

	st, err := db.SessionStats()
	if err != nil {
		return fmt.Errorf("session stats: %w", err)
	}
	fmt.Printf("\n%d total: %d completed, %d rate-limited, %d cancelled\n",
		st.Total, st.Completed, st.RateLimited, st.Cancelled)
	return nil
}

// --- history start ---

var (
	startSlug      string
	startMode      string
	startBudget    string
	startOutputDir string
)

var historyStartCmd = &cobra.Command{
	Use:   "start [topic]",
	Short: "Start a session record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := openDB(cfg)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		s := &history.Session{
			Slug:      startSlug,
			Topic:     args[0],
			Mode:      startMode,
			Budget:    startBudget,
			Threshold: cfg.Limits.Threshold,
			OutputDir: startOutputDir,
		}
		if err := db.StartSession(s); err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		fmt.Printf("Started session %s\n", s.Slug)
		return nil
	},
}

// --- history end ---

var (
	endIterations int
	endStatus     string
	endReason     string
)

var historyEndCmd = &cobra.Command{
	Use:   "end [slug]",
	Short: "End a running session record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := openDB(cfg)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		if err := db.EndSession(args[0], endIterations, endStatus, endReason); err != nil {
			return fmt.Errorf("end session: %w", err)
		}
		fmt.Printf("Ended session %s (%s)\n", args[0], endStatus)
		return nil
	},
}

// --- history stats ---

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize session outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := openDB(cfg)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		st, err := db.SessionStats()
		if err != nil {
			return fmt.Errorf("session stats: %w", err)
		}
		fmt.Printf("total:        %d\n", st.Total)
		fmt.Printf("completed:    %d\n", st.Completed)
		fmt.Printf("rate-limited: %d\n", st.RateLimited)
		fmt.Printf("cancelled:    %d\n", st.Cancelled)
		return nil
	},
}

// --- limits command ---

var limitsSessionTokens int64

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Check token spend against configured ceilings",
	RunE:  runLimits,
}

func runLimits(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	result, err := db.CheckLimits(configLimits(cfg), limitsSessionTokens, time.Now())
	if err != nil {
		return fmt.Errorf("check limits: %w", err)
	}

	for _, d := range result.Details {
		if d.Note != "" {
			fmt.Printf("%-8s %s\n", d.Window, d.Note)
			continue
		}
		mark := "ok"
		if d.Exceeded {
			mark = "REFUSED"
		}
		fmt.Printf("%-8s %d / %d (%.1f%%) %s\n", d.Window, d.Used, d.Limit, d.Pct, mark)
	}
	if result.Allowed {
		fmt.Println("allowed")
	} else {
		fmt.Println("refused")
	}
	return nil
}

// --- limits record ---

var limitsRecordCmd = &cobra.Command{
	Use:   "record [tokens]",
	Short: "Record token spend for today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tokens int64
		if _, err := fmt.Sscanf(args[0], "%d", &tokens); err != nil {
			return fmt.Errorf("parse tokens %q: %w", args[0], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := openDB(cfg)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		day := time.Now().UTC().Format("2006-01-02")
		if err := db.RecordUsage(day, tokens); err != nil {
			return fmt.Errorf("record usage: %w", err)
		}
		fmt.Printf("Recorded %d tokens for %s\n", tokens, day)
		return nil
	},
}
