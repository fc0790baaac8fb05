package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ten-second-life/internal/platform/tui"
	"github.com/vovakirdan/ten-second-life/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show run history",
	Long: `Show finished runs and per-level records. On a terminal this opens an
interactive board; with --plain, or when output is piped, it prints tables.

Examples:
  tensec runs
  tensec runs --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print tables instead of the interactive board")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Rows per table in plain output")
}

func runRuns(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := storage.Open(s.cfg.Save.DB)
	if err != nil {
		return fmt.Errorf("tensec: open run history: %w", err)
	}
	defer store.Close()

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		rt := runtimeConfig()
		return tui.RunBoard(store, rt.ScreenW, rt.ScreenH)
	}
	return printRuns(store, flagLimit)
}

func printRuns(store *storage.Store, limit int) error {
	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("tensec: %w", err)
	}
	if stats.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tensec play' to start one!")
		return nil
	}

	fmt.Printf("Runs: %d  Victories: %d  Game overs: %d  Quit: %d\n",
		stats.Runs, stats.Victories, stats.GameOvers, stats.Abandoned)
	fmt.Printf("Best level: %d  Time played: %.1fs  Last played: %s\n",
		stats.BestLevel, stats.TotalSeconds, stats.LastPlayed.Format("2006-01-02 15:04"))

	best, err := store.BestRuns(limit)
	if err != nil {
		return fmt.Errorf("tensec: %w", err)
	}
	fmt.Println()
	fmt.Println("Best runs")
	printRunTable(best)

	recent, err := store.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("tensec: %w", err)
	}
	fmt.Println()
	fmt.Println("Recent runs")
	printRunTable(recent)

	clears, err := store.BestClears()
	if err != nil {
		return fmt.Errorf("tensec: %w", err)
	}
	fmt.Println()
	fmt.Println("Level records")
	fmt.Printf("  %-3s  %-20s  %-9s  %-6s  %s\n", "#", "Level", "Best left", "Fewest", "Clears")
	fmt.Printf("  %-3s  %-20s  %-9s  %-6s  %s\n", "-", "-----", "---------", "------", "------")
	for _, c := range clears {
		fmt.Printf("  %-3d  %-20s  %-9s  %-6d  %d\n",
			c.LevelNumber, c.LevelID, fmt.Sprintf("%.1fs", c.BestTimeLeft), c.FewestTries, c.Clears)
	}
	return nil
}

func printRunTable(runs []storage.Run) {
	fmt.Printf("  %-4s  %-9s  %-5s  %-5s  %-8s  %s\n", "Rank", "Outcome", "Level", "Lives", "Time", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-5s  %-8s  %s\n", "----", "-------", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-5d  %-5d  %-8s  %s\n",
			i+1, r.Outcome, r.LevelReached, r.Attempts, fmt.Sprintf("%.1fs", r.Seconds),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
