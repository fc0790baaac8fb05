package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ten-second-life/internal/progress"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved progress",
	Long: `Show what the saved world remembers: the level to resume at, cleared
levels and every door, switch, item and person recorded so far.

Examples:
  tensec progress
  tensec progress --reset
  tensec progress --save ./world.json`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Erase saved progress")
}

// progressFor loads the saved world, or an empty one.
func progressFor(s *session) *progress.WorldState {
	return progress.LoadOrDefault(s.save, s.logger)
}

func runProgress(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if flagReset {
		if err := s.save.Save(progress.New()); err != nil {
			return fmt.Errorf("tensec: reset progress: %w", err)
		}
		s.logger.Info("progress reset", "path", s.save.Path())
		fmt.Printf("Progress erased (%s).\n", s.save.Path())
		return nil
	}

	w := progressFor(s)
	fmt.Printf("Saved progress - %s\n", s.save.Path())
	fmt.Println()

	resume := "level 1"
	if label := s.resumeLabel(); label != "" {
		resume = label
	}
	fmt.Printf("  Resume at:       %s\n", resume)
	fmt.Printf("  Levels cleared:  %d of %d\n", w.LevelsCompleted.Len(), s.catalog.Len())
	fmt.Printf("  Lives spent:     %d\n", w.LifeCount)
	fmt.Printf("  Time played:     %.1fs\n", w.TotalTimePlayed)
	fmt.Println()

	sets := []struct {
		name string
		set  progress.Set
	}{
		{"Doors opened", w.DoorsOpened},
		{"Switches on", w.SwitchesActivated},
		{"Items collected", w.ItemsCollected},
		{"People met", w.NPCsTalkedTo},
		{"Areas unlocked", w.AreasUnlocked},
	}
	for _, e := range sets {
		list := "-"
		if e.set.Len() > 0 {
			list = strings.Join(e.set, ", ")
		}
		fmt.Printf("  %-16s %s\n", e.name+":", list)
	}
	return nil
}
