package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ten-second-life/internal/storage"
)

// Run board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the board list sidebar
	sidebarWidth       = 24 // Width of the board list sidebar
	maxRuns            = 100
)

// HistorySource is the read side of the run history.
type HistorySource interface {
	BestRuns(limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	BestClears() ([]storage.BestClear, error)
	GetStats() (*storage.Stats, error)
}

// board is one page of the run history.
type board int

const (
	boardBest board = iota
	boardRecent
	boardLevels
	boardCount
)

func (b board) title() string {
	switch b {
	case boardBest:
		return "Best Runs"
	case boardRecent:
		return "Recent Runs"
	default:
		return "Level Records"
	}
}

// BoardKeyMap defines the key bindings for the run board.
type BoardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel is the Bubble Tea model for the run history screen.
type BoardModel struct {
	source      HistorySource
	current     board
	rows        []table.Row
	stats       *storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        BoardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewBoardModel creates a run board over source.
func NewBoardModel(source HistorySource, width, height int) BoardModel {
	m := BoardModel{
		source:      source,
		keys:        DefaultBoardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// columns returns the table columns of the current board, fitted to width.
func (m *BoardModel) columns() []table.Column {
	var cols []table.Column
	switch m.current {
	case boardLevels:
		cols = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Level", Width: 18},
			{Title: "Best left", Width: 10},
			{Title: "Fewest", Width: 7},
			{Title: "Clears", Width: 7},
		}
	default:
		cols = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Outcome", Width: 10},
			{Title: "Level", Width: 6},
			{Title: "Lives", Width: 6},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: 13},
		}
	}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	// Give spare room to the widest text column, or take it back from there.
	wide := 1
	if m.current != boardLevels {
		wide = len(cols) - 1
	}
	cols[wide].Width = max(6, cols[wide].Width+tableWidth-used)
	if cols[wide].Width > 24 {
		cols[wide].Width = 24
	}
	return cols
}

func (m *BoardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current board and the summary stats from the source.
func (m *BoardModel) load() {
	m.rows = nil
	m.loadErr = nil
	if m.source == nil {
		m.applyRows()
		return
	}

	stats, err := m.source.GetStats()
	if err == nil {
		m.stats = stats
	}

	switch m.current {
	case boardBest, boardRecent:
		var runs []storage.Run
		if m.current == boardBest {
			runs, err = m.source.BestRuns(maxRuns)
		} else {
			runs, err = m.source.RecentRuns(maxRuns)
		}
		for i, r := range runs {
			m.rows = append(m.rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				outcomeLabel(r.Outcome),
				fmt.Sprintf("%d", r.LevelReached),
				fmt.Sprintf("%d", r.Attempts),
				fmt.Sprintf("%.1fs", r.Seconds),
				r.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	case boardLevels:
		var clears []storage.BestClear
		clears, err = m.source.BestClears()
		for _, c := range clears {
			m.rows = append(m.rows, table.Row{
				fmt.Sprintf("%d", c.LevelNumber),
				c.LevelID,
				fmt.Sprintf("%.1fs", c.BestTimeLeft),
				fmt.Sprintf("%d", c.FewestTries),
				fmt.Sprintf("%d", c.Clears),
			})
		}
	}
	m.loadErr = err
	m.applyRows()
}

// applyRows replaces the table contents. Columns go first so that rows
// never outnumber them.
func (m *BoardModel) applyRows() {
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func outcomeLabel(outcome string) string {
	switch outcome {
	case "victory":
		return "Victory"
	case "game_over":
		return "Game over"
	case "abandoned":
		return "Quit"
	default:
		return outcome
	}
}

// Init initializes the board model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextBoard):
			m.current = (m.current + 1) % boardCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.current = (m.current + boardCount - 1) % boardCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.applyRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("TEN SECOND LIFE - %s", strings.ToUpper(m.current.title()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board list and stats beside the table.
func (m BoardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for b := board(0); b < boardCount; b++ {
		cursor := "  "
		style := lipgloss.NewStyle()
		if b == m.current {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + b.title()))
		sidebar.WriteString("\n")
	}

	if s := m.stats; s != nil && s.Runs > 0 {
		sidebar.WriteString("\n")
		fmt.Fprintf(&sidebar, "Runs:      %d\n", s.Runs)
		fmt.Fprintf(&sidebar, "Victories: %d\n", s.Victories)
		fmt.Fprintf(&sidebar, "Best level: %d\n", s.BestLevel)
		fmt.Fprintf(&sidebar, "Played:    %.0fs\n", s.TotalSeconds)
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders board tabs above the table.
func (m BoardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, boardCount)
	for bd := board(0); bd < boardCount; bd++ {
		if bd == m.current {
			tabs = append(tabs, activeTabStyle.Render(bd.title()))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+bd.title()+" "))
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.current.title())
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table, a load error or an empty message.
func (m BoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render(fmt.Sprintf("Could not read history:\n%v", m.loadErr))
	}
	if len(m.rows) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nTen seconds is all you need.")
	}
	return m.table.View()
}

// centerText centers each line of text within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunBoard runs the run history screen until the user leaves it.
func RunBoard(source HistorySource, width, height int) error {
	p := tea.NewProgram(
		NewBoardModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
