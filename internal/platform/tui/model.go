package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ten-second-life/internal/audio"
	"github.com/vovakirdan/ten-second-life/internal/config"
	"github.com/vovakirdan/ten-second-life/internal/core"
	"github.com/vovakirdan/ten-second-life/internal/game"
	"github.com/vovakirdan/ten-second-life/internal/levels"
)

// footerRows is the space below the playfield: the timer bar and help line.
const footerRows = 2

// Options configures a terminal session.
type Options struct {
	Runtime core.RuntimeConfig
	// Audio receives the game's sound events. Nil plays nothing.
	Audio audio.Player
	// Watcher, when set, reloads levels from LevelsDir on change.
	Watcher   *levels.Watcher
	LevelsDir string
	Logger    *log.Logger
}

// Model is the Bubble Tea model driving a Game.
type Model struct {
	game    *game.Game
	screen  *core.Screen
	audio   audio.Player
	runtime core.RuntimeConfig
	dt      float64

	keys   KeyMap
	mapper *KeyMapper
	held   *HeldKeys
	frame  core.InputFrame

	help  help.Model
	timer bar.Model

	watcher   *levels.Watcher
	levelsDir string
	logger    *log.Logger

	quitting bool
}

// NewModel creates a Bubble Tea model for g.
func NewModel(g *game.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	player := opts.Audio
	if player == nil {
		player = audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	held := time.Duration(g.Config().Input.HeldKeyMillis) * time.Millisecond

	m := Model{
		game:      g,
		screen:    core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-footerRows)),
		audio:     player,
		runtime:   cfg,
		dt:        cfg.StepSeconds(),
		keys:      keys,
		mapper:    NewKeyMapper(keys),
		held:      NewHeldKeys(held),
		frame:     core.NewInputFrame(),
		help:      help.New(),
		timer:     bar.New(bar.WithSolidFill("10"), bar.WithoutPercentage()),
		watcher:   opts.Watcher,
		levelsDir: opts.LevelsDir,
		logger:    logger,
	}
	m.timer.Width = cfg.ScreenW
	m.help.Width = cfg.ScreenW
	return m
}

// Init starts the tick loop and, if configured, the level watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.runtime.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForLevels(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case levelsChangedMsg:
		m.reloadLevels(msg.path)
		return m, waitForLevels(m.watcher)

	case watchErrMsg:
		m.logger.Warn("level watcher", "err", msg.err)
		return m, waitForLevels(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	now := time.Now()
	for _, a := range m.mapper.MapKey(msg) {
		if a.IsMovement() {
			m.held.Press(a, now)
			m.frame.Hold(a)
			continue
		}
		m.frame.Set(a)
	}
	return m, nil
}

// handleResize processes window resize events. The world is in its own
// units, so a resize only changes the projection.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-footerRows))
	m.timer.Width = msg.Width
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the simulation by one fixed step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.held.Apply(&m.frame, now)
	res := m.game.Step(m.dt, m.frame)
	m.frame.Clear()

	for _, ev := range res.Sounds {
		m.audio.Dispatch(ev)
	}
	if res.State != game.StatePlaying {
		m.held.Release()
	}
	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.runtime.TickRate)
}

// reloadLevels rebuilds the catalog from disk. A broken edit keeps the
// current catalog in place.
func (m Model) reloadLevels(path string) {
	cfg := m.game.Config()
	cat, err := levels.LoadCatalog(m.levelsDir, cfg.Bounds(), cfg.PlayerStart(), m.logger)
	if err != nil {
		m.logger.Warn("level reload rejected", "file", path, "err", err)
		return
	}
	m.game.SetCatalog(cat)
	m.logger.Info("levels reloaded", "file", path, "levels", cat.Len())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.Dir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("tensec_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen) + "\n"

	if m.game.State() == game.StatePlaying {
		frac := m.game.TimerFraction()
		low := m.game.Remaining() <= m.game.Config().Life.LowTimeWarning
		m.timer.FullColor = string(timeColor(frac, low))
		out += m.timer.ViewAs(frac)
	}
	return out + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for g and blocks until it exits.
func Run(g *game.Game, opts Options) error {
	model := NewModel(g, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
