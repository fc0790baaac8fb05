package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

// Choice is what the user picked in the launcher.
type Choice int

const (
	ChoiceQuit Choice = iota
	ChoicePlay
	ChoiceHistory
	ChoiceResetProgress
)

// MenuItem is a selectable launcher entry.
type MenuItem struct {
	Choice Choice
	Title  string
	Hint   string
}

// MenuKeyMap defines the launcher key bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default launcher bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the launcher.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	width      int
	height     int
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model
	resume     string
	confirming bool // reset progress asks twice
	chosen     Choice
	done       bool
}

// NewMenuModel creates a launcher. resume, when not empty, names the
// level a new run would continue from.
func NewMenuModel(cfg core.RuntimeConfig, resume string) MenuModel {
	return MenuModel{
		items: []MenuItem{
			{Choice: ChoicePlay, Title: "Play", Hint: "ten seconds, three lives"},
			{Choice: ChoiceHistory, Title: "Run history", Hint: "best runs and level records"},
			{Choice: ChoiceResetProgress, Title: "Reset progress", Hint: "forget doors, keys and switches"},
			{Choice: ChoiceQuit, Title: "Quit"},
		},
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		resume: resume,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.chosen = ChoiceQuit
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.confirming = false
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		m.confirming = false
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		item := m.items[m.cursor]
		if item.Choice == ChoiceResetProgress && !m.confirming {
			m.confirming = true
			return m, nil
		}
		m.chosen = item.Choice
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(1, m.height/2-8)))
	b.WriteString(centerText(titleStyle.Render("T E N   S E C O N D   L I F E"), m.width))
	b.WriteString("\n\n")
	if m.resume != "" {
		b.WriteString(centerText(dimStyle.Render("Saved at "+m.resume), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		line := "  " + item.Title
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = "> " + item.Title
			style = activeStyle
		}
		b.WriteString(centerText(style.Render(fmt.Sprintf("%-20s", line)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := m.items[m.cursor].Hint
	if m.confirming {
		b.WriteString(centerText(warnStyle.Render("Press enter again to erase saved progress"), m.width))
	} else if hint != "" {
		b.WriteString(centerText(dimStyle.Render(hint), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// Chosen returns the user's pick. It is ChoiceQuit until a selection is made.
func (m MenuModel) Chosen() Choice {
	return m.chosen
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// RunMenu runs the launcher and returns the pick and the latest terminal size.
func RunMenu(cfg core.RuntimeConfig, resume string) (Choice, core.RuntimeConfig, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, resume),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return ChoiceQuit, cfg, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return ChoiceQuit, cfg, nil
	}
	return m.Chosen(), m.Config(), nil
}
