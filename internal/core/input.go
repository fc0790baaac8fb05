package core

// Action represents a semantic game action, abstracted from physical key presses.
// Movement actions are level-triggered (held); the rest are edge-triggered.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - move up (held)
	ActionDown            // S, Down arrow - move down (held)
	ActionLeft            // A, Left arrow - move left (held)
	ActionRight           // D, Right arrow - move right (held)
	ActionInteract        // Space, E - interact with door/NPC/switch/zone
	ActionConfirm         // Enter, Space outside play - start, retry, advance
	ActionReset           // R - forfeit attempt / retry
	ActionMenu            // Escape - back to menu
	ActionQuit            // Q, Ctrl+C - exit program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionInteract:
		return "Interact"
	case ActionConfirm:
		return "Confirm"
	case ActionReset:
		return "Reset"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether a is one of the four held movement actions.
func (a Action) IsMovement() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// InputFrame is the input snapshot for a single simulation step.
type InputFrame struct {
	// Held holds movement keys currently down.
	Held map[Action]bool
	// Actions holds edge-triggered actions pressed since the previous step.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held:    make(map[Action]bool),
		Actions: make(map[Action]bool),
	}
}

// Set marks an edge-triggered action as pressed for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Hold marks a movement action as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given edge-triggered action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// IsHeld returns true if the given movement action is held this frame.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Direction returns the unit movement vector for the held keys.
// Opposite keys cancel; diagonals are normalized to length 1.
func (f InputFrame) Direction() Vec {
	var d Vec
	if f.IsHeld(ActionLeft) {
		d.X--
	}
	if f.IsHeld(ActionRight) {
		d.X++
	}
	if f.IsHeld(ActionUp) {
		d.Y--
	}
	if f.IsHeld(ActionDown) {
		d.Y++
	}
	return d.Normalize()
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
