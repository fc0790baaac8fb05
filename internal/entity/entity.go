// Package entity holds the plain data for everything placed in a level:
// items, doors, NPCs, switches and zones, plus the Player.
//
// Entities are a single tagged struct dispatched on Kind. State flags are
// one-way: once collected, opened, activated or revealed they stay that way
// for the lifetime of the entity.
package entity

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

// Kind is the entity variant tag.
type Kind int

const (
	KindItem Kind = iota
	KindDoor
	KindNPC
	KindSwitch
	KindZone
)

var kindNames = [...]string{"item", "door", "npc", "switch", "zone"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind looks up an entity kind by name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return KindItem, fmt.Errorf("unknown entity kind %q", name)
}

// Entity is one object in a level. Which payload fields matter depends on Kind:
//
//	item:   Item, Hidden
//	door:   Item (required key, ItemNone if opened by the rule), Unlocks, LockedText, OpenText
//	npc:    Name, Dialogue
//	switch: nothing extra
//	zone:   Item (accepted carried item), Reveals, OpenText
type Entity struct {
	ID   string // unique within the game, "level/entity"
	Kind Kind
	Box  core.Rect

	Item       ItemKind
	Hidden     bool
	Reveals    string
	Name       string
	Dialogue   []string
	Unlocks    string
	LockedText string
	OpenText   string

	// Persist marks doors and switches whose state is mirrored into WorldState.
	Persist bool

	collected bool
	open      bool
	activated bool
	revealed  bool
	line      int
	talked    bool
}

// Collected reports whether the item has been picked up.
func (e *Entity) Collected() bool { return e.collected }

// IsOpen reports whether the door is open.
func (e *Entity) IsOpen() bool { return e.open }

// Activated reports whether the switch or zone has been used.
func (e *Entity) Activated() bool { return e.activated }

// Talked reports whether the NPC has been spoken to.
func (e *Entity) Talked() bool { return e.talked }

// Visible reports whether the entity should be drawn and can be touched.
func (e *Entity) Visible() bool {
	if e.Kind == KindItem {
		return !e.collected && (!e.Hidden || e.revealed)
	}
	return true
}

// Collect marks a visible item as collected. It returns true only on the
// call that changed the flag.
func (e *Entity) Collect() bool {
	if e.Kind != KindItem || !e.Visible() {
		return false
	}
	e.collected = true
	return true
}

// Open opens a door. It returns true only on the call that opened it.
func (e *Entity) Open() bool {
	if e.Kind != KindDoor || e.open {
		return false
	}
	e.open = true
	return true
}

// Activate flips a switch or uses a zone. It returns true only on the first call.
func (e *Entity) Activate() bool {
	if (e.Kind != KindSwitch && e.Kind != KindZone) || e.activated {
		return false
	}
	e.activated = true
	return true
}

// Reveal makes a hidden item collectible. It returns true only on the first call.
func (e *Entity) Reveal() bool {
	if e.Kind != KindItem || !e.Hidden || e.revealed {
		return false
	}
	e.revealed = true
	return true
}

// NextLine advances the NPC's dialogue and returns the line to show.
// The last line repeats once the dialogue is exhausted.
func (e *Entity) NextLine() string {
	if e.Kind != KindNPC || len(e.Dialogue) == 0 {
		return ""
	}
	line := e.Dialogue[e.line]
	if e.line < len(e.Dialogue)-1 {
		e.line++
	}
	e.talked = true
	return line
}

// Glyph returns the rune used to draw the entity.
func (e *Entity) Glyph() (rune, core.Color) {
	switch e.Kind {
	case KindItem:
		s := e.Item.Spec()
		return s.Glyph, s.Color
	case KindDoor:
		if e.open {
			return '░', core.ColorGreen
		}
		return '█', core.ColorBrown
	case KindNPC:
		return '☺', core.ColorBrightGreen
	case KindSwitch:
		if e.activated {
			return '▣', core.ColorBrightGreen
		}
		return '□', core.ColorGray
	case KindZone:
		if e.activated {
			return '▒', core.ColorOrange
		}
		return '·', core.ColorYellow
	default:
		return '?', core.ColorDefault
	}
}
