package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

// KeyMap defines the key bindings used while playing.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Interact key.Binding
	Confirm  key.Binding
	Reset    key.Binding
	Menu     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Interact, k.Reset, k.Menu, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Interact, k.Confirm, k.Reset},
		{k.Menu, k.Quit, k.Help},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "move right"),
		),
		Interact: key.NewBinding(
			key.WithKeys(" ", "e"),
			key.WithHelp("space", "interact"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "continue"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "give up / retry"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey returns every action a key triggers. Space both interacts and
// confirms; the game only looks at the one that fits its state.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) []core.Action {
	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{km.keys.Quit, core.ActionQuit},
		{km.keys.Up, core.ActionUp},
		{km.keys.Down, core.ActionDown},
		{km.keys.Left, core.ActionLeft},
		{km.keys.Right, core.ActionRight},
		{km.keys.Interact, core.ActionInteract},
		{km.keys.Confirm, core.ActionConfirm},
		{km.keys.Reset, core.ActionReset},
		{km.keys.Menu, core.ActionMenu},
	}

	var actions []core.Action
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			actions = append(actions, b.action)
		}
	}
	return actions
}

// HeldKeys emulates key holding. Terminals report presses and auto-repeat
// but never releases, so a movement key counts as held for a short window
// after its last press.
type HeldKeys struct {
	window  time.Duration
	pressed map[core.Action]time.Time
}

// NewHeldKeys creates a tracker that holds keys for window after each press.
func NewHeldKeys(window time.Duration) *HeldKeys {
	return &HeldKeys{window: window, pressed: make(map[core.Action]time.Time)}
}

// Press records a press of a movement action at now. Pressing a direction
// releases its opposite at once.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if !a.IsMovement() {
		return
	}
	delete(h.pressed, opposite(a))
	h.pressed[a] = now
}

// Apply marks every still-held movement action in frame and forgets
// expired ones.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, at := range h.pressed {
		if now.Sub(at) > h.window {
			delete(h.pressed, a)
			continue
		}
		frame.Hold(a)
	}
}

// Release forgets every held key.
func (h *HeldKeys) Release() {
	clear(h.pressed)
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}
