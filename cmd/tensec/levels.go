package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows the levels in play order. With --levels-dir the catalog is read
from that directory and validated the same way the game does.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	infos := s.catalog.List()
	w := progressFor(s)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range infos {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-11s  %s\n", "#", maxIDLen, "ID", "Rule", "Title")
	fmt.Printf("  %-3s  %-*s  %-11s  %s\n", "-", maxIDLen, "--", "----", "-----")
	for _, l := range infos {
		mark := " "
		if w.LevelsCompleted.Has(l.ID) {
			mark = "*"
		}
		fmt.Printf("%s %-3d  %-*s  %-11s  %s\n", mark, l.Number, maxIDLen, l.ID, l.Rule, l.Title)
		if l.Objective != "" {
			fmt.Printf("  %-3s  %-*s  %-11s  %s\n", "", maxIDLen, "", "", l.Objective)
		}
	}

	fmt.Println()
	fmt.Println("* cleared in the saved game. Run 'tensec play' to play.")
	return nil
}
