// Package tui provides the Bubble Tea front end for Ten Second Life.
// It handles the terminal loop, input mapping, audio dispatch and level
// hot-reload.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ten-second-life/internal/levels"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// levelsChangedMsg reports that a level file on disk changed.
type levelsChangedMsg struct {
	path string
}

// watchErrMsg carries a failure from the level watcher.
type watchErrMsg struct {
	err error
}

// waitForLevels blocks until the watcher reports a change or an error.
// It returns nil once the watcher is closed, which ends the chain.
func waitForLevels(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return levelsChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}
