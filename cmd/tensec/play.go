package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ten-second-life/internal/audio"
	"github.com/vovakirdan/ten-second-life/internal/core"
	"github.com/vovakirdan/ten-second-life/internal/game"
	"github.com/vovakirdan/ten-second-life/internal/levels"
	"github.com/vovakirdan/ten-second-life/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playing",
	Long: `Start playing from the saved level, or from level 1 on a fresh save.

Controls:
  Arrows/WASD  - Move
  Space/E      - Interact (doors, switches, people, zones)
  Enter/Space  - Start, retry, continue
  R            - Give up this life / retry
  Esc          - Back to the title (resets progress)
  Q/Ctrl+C     - Quit (progress is kept)
  Ctrl+S       - Save a screenshot
  ?            - Toggle help

Difficulty options:
  easy   - 5 lives of 12 seconds
  normal - 3 lives of 10 seconds
  hard   - 2 lives of 8 seconds, smaller time crystals

Examples:
  tensec play
  tensec play --difficulty hard
  tensec play --levels-dir ./levels --watch
  tensec play --mute --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return s.play(runtimeConfig())
}

// play runs one game until the player quits.
func (s *session) play(rt core.RuntimeConfig) error {
	opts := game.Options{
		Config:  s.cfg,
		Catalog: s.catalog,
		Store:   s.save,
		Logger:  s.logger,
		Seed:    rt.Seed,
	}
	// A nil *storage.Store must not become a non-nil History.
	if history := s.openHistory(); history != nil {
		defer history.Close()
		opts.History = history
	}

	g, err := game.New(opts)
	if err != nil {
		return fmt.Errorf("tensec: %w", err)
	}

	var player audio.Player = audio.Nop{}
	if !flagMute {
		player, err = audio.Open(s.logger)
		if err != nil {
			s.logger.Warn("audio disabled", "err", err)
		}
	}
	defer player.Close()

	var watcher *levels.Watcher
	if flagWatch {
		if flagLevelsDir == "" {
			s.logger.Warn("--watch needs --levels-dir, ignoring")
		} else if watcher, err = levels.NewWatcher(flagLevelsDir); err != nil {
			s.logger.Warn("level watcher unavailable", "dir", flagLevelsDir, "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	err = tui.Run(g, tui.Options{
		Runtime:   rt,
		Audio:     player,
		Watcher:   watcher,
		LevelsDir: flagLevelsDir,
		Logger:    s.logger,
	})
	if err != nil {
		return fmt.Errorf("tensec: run game: %w", err)
	}
	return nil
}
