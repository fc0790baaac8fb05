package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ten-second-life/internal/platform/tui"
	"github.com/vovakirdan/ten-second-life/internal/progress"
)

// runMenu is the root command: a launcher that loops until the user quits.
func runMenu(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	rt := runtimeConfig()
	for {
		choice, updated, err := tui.RunMenu(rt, s.resumeLabel())
		if err != nil {
			return fmt.Errorf("tensec: menu: %w", err)
		}
		rt = updated

		switch choice {
		case tui.ChoicePlay:
			if flagSeed == 0 {
				rt.Seed = time.Now().UnixNano()
			}
			if err := s.play(rt); err != nil {
				return err
			}

		case tui.ChoiceHistory:
			history := s.openHistory()
			if history == nil {
				err = tui.RunBoard(nil, rt.ScreenW, rt.ScreenH)
			} else {
				err = tui.RunBoard(history, rt.ScreenW, rt.ScreenH)
				history.Close()
			}
			if err != nil {
				return fmt.Errorf("tensec: run history: %w", err)
			}

		case tui.ChoiceResetProgress:
			if err := s.save.Save(progress.New()); err != nil {
				return fmt.Errorf("tensec: reset progress: %w", err)
			}
			s.logger.Info("progress reset from launcher")

		default:
			return nil
		}
	}
}
