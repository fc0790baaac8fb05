package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ten-second-life/internal/config"
	"github.com/vovakirdan/ten-second-life/internal/core"
	"github.com/vovakirdan/ten-second-life/internal/game"
	"github.com/vovakirdan/ten-second-life/internal/levels"
	"github.com/vovakirdan/ten-second-life/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"w", runes("w"), []core.Action{core.ActionUp}},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionInteract, core.ActionConfirm}},
		{"e", runes("e"), []core.Action{core.ActionInteract}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}},
		{"r", runes("r"), []core.Action{core.ActionReset}},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, []core.Action{core.ActionMenu}},
		{"q", runes("q"), []core.Action{core.ActionQuit}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}},
		{"unbound", runes("z"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.MapKey(tt.msg))
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(150 * time.Millisecond)
	t0 := time.Unix(100, 0)

	h.Press(core.ActionRight, t0)
	h.Press(core.ActionInteract, t0) // not a movement key

	f := core.NewInputFrame()
	h.Apply(&f, t0.Add(100*time.Millisecond))
	assert.True(t, f.IsHeld(core.ActionRight))
	assert.False(t, f.IsHeld(core.ActionInteract))

	f.Clear()
	h.Apply(&f, t0.Add(200*time.Millisecond))
	assert.False(t, f.IsHeld(core.ActionRight))
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := NewHeldKeys(time.Second)
	t0 := time.Unix(100, 0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionUp, t0)
	h.Press(core.ActionRight, t0)

	f := core.NewInputFrame()
	h.Apply(&f, t0)
	assert.False(t, f.IsHeld(core.ActionLeft))
	assert.True(t, f.IsHeld(core.ActionRight))
	assert.True(t, f.IsHeld(core.ActionUp))

	h.Release()
	f.Clear()
	h.Apply(&f, t0)
	assert.Empty(t, f.Held)
}

type recorder struct {
	events []core.SoundEvent
}

func (r *recorder) Dispatch(ev core.SoundEvent) { r.events = append(r.events, ev) }
func (r *recorder) Close()                       {}

func newTestModel(t *testing.T) (Model, *game.Game, *recorder) {
	t.Helper()
	cfg := config.DefaultGameConfig()
	cat, err := levels.LoadCatalog("", cfg.Bounds(), cfg.PlayerStart(), nil)
	require.NoError(t, err)
	g, err := game.New(game.Options{Config: cfg, Catalog: cat, Seed: 1})
	require.NoError(t, err)

	rec := &recorder{}
	m := NewModel(g, Options{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60},
		Audio:   rec,
	})
	return m, g, rec
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModelStartsRunOnSpace(t *testing.T) {
	m, g, rec := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, cmd := update(t, m, TickMsg(time.Now()))
	require.NotNil(t, cmd)

	assert.Equal(t, game.StatePlaying, g.State())
	require.NotEmpty(t, rec.events)
	assert.Equal(t, core.SoundHeartbeat, rec.events[0].Sound)
	assert.Equal(t, core.LoopStart, rec.events[0].Playback)

	view := m.View()
	assert.Contains(t, view, "Level 1")
}

func TestModelMovesWhileKeyHeld(t *testing.T) {
	m, g, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Now()))
	require.Equal(t, game.StatePlaying, g.State())

	x0 := g.Player().Box.X
	m, _ = update(t, m, runes("d"))
	now := time.Now()
	for i := range 5 {
		m, _ = update(t, m, TickMsg(now.Add(time.Duration(i)*10*time.Millisecond)))
	}
	assert.Greater(t, g.Player().Box.X, x0)
}

func TestModelQuitKey(t *testing.T) {
	m, g, _ := newTestModel(t)
	m, _ = update(t, m, runes("q"))
	m, cmd := update(t, m, TickMsg(time.Now()))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
	assert.Equal(t, game.StateMenu, g.State())
}

func TestModelResizeKeepsState(t *testing.T) {
	m, g, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Now()))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, game.StatePlaying, g.State())
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 40-footerRows, m.screen.Height())
}

func TestMenuResetNeedsConfirmation(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "")
	step := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(MenuModel)
		return cmd
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, step(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Contains(t, m.View(), "Press enter again")

	require.NotNil(t, step(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, ChoiceResetProgress, m.Chosen())
}

func TestMenuQuit(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "Level 2: The Door")
	assert.Contains(t, m.View(), "Saved at Level 2")

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceQuit, next.(MenuModel).Chosen())
}

func TestBoardCyclesBoards(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.SaveRun(storage.Run{RunID: "a", Outcome: "victory", LevelReached: 6, Attempts: 4, Seconds: 41})
	require.NoError(t, err)
	_, err = store.SaveLevelClear(storage.LevelClear{RunID: "a", LevelID: "first_steps", LevelNumber: 1, TimeLeft: 6.5, Attempts: 1})
	require.NoError(t, err)

	m := NewBoardModel(store, 100, 30)
	view := m.View()
	assert.Contains(t, view, "BEST RUNS")
	assert.Contains(t, view, "Victory")
	assert.Contains(t, view, "Runs:")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(BoardModel)
	view = m.View()
	assert.Contains(t, view, "LEVEL RECORDS")
	assert.Contains(t, view, "first_steps")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Contains(t, next.View(), "RECENT RUNS")
}

func TestBoardEmptyAndNarrow(t *testing.T) {
	m := NewBoardModel(nil, 60, 20)
	view := m.View()
	assert.Contains(t, view, "No runs recorded yet.")
	assert.False(t, strings.Contains(view, "Boards"))
}

func TestRenderScreenPlainRuns(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColor(1, 1, "x", core.ColorGold)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ab  ", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], " "))
	assert.Contains(t, lines[1], "x")
}
