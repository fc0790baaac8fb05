package levels

import (
	"fmt"

	"github.com/vovakirdan/ten-second-life/internal/core"
	"github.com/vovakirdan/ten-second-life/internal/entity"
	"github.com/vovakirdan/ten-second-life/internal/progress"
)

// EventKind enumerates the side effects a level reports to the game.
type EventKind int

const (
	EventItemCollected EventKind = iota
	EventTimeBonus
	EventDoorOpened
	EventAreaUnlocked
	EventSwitchActivated
	EventNPCTalked
	EventRevealed
	EventLocked
)

// Event is one side effect of a step or interact. EntityID is game-wide.
type Event struct {
	Kind     EventKind
	EntityID string
	Item     entity.ItemKind
	Area     string
	// Restored marks a fact rebuilt from saved progress by Reset. It is
	// recorded but was not caused by the player this attempt.
	Restored bool
}

// Level is one attempt's worth of a level: entities in their current state
// plus the win-condition rule. Reset rebuilds it from the definition.
type Level struct {
	def       *Def
	rule      Rule
	entities  []*entity.Entity
	byID      map[string]*entity.Entity
	completed bool
	events    []Event
}

// New builds a level from a validated definition and resets it.
func New(def *Def, facts progress.Facts) (*Level, error) {
	def.normalize()
	if err := validateRule(def); err != nil {
		return nil, err
	}
	rule, err := newRule(def)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", def.ID, err)
	}
	l := &Level{def: def, rule: rule}
	l.Reset(facts)
	return l, nil
}

// Reset rebuilds every entity from its definition. Persisted doors and
// switches start in the state recorded in facts; nothing else survives.
func (l *Level) Reset(facts progress.Facts) {
	l.entities = make([]*entity.Entity, 0, len(l.def.Entities))
	l.byID = make(map[string]*entity.Entity, len(l.def.Entities))
	l.completed = false
	l.events = l.events[:0]

	for _, ed := range l.def.Entities {
		e := buildEntity(l.def, ed)
		if e.Persist && facts != nil {
			switch e.Kind {
			case entity.KindDoor:
				if facts.DoorOpen(e.ID) {
					e.Open()
				}
			case entity.KindSwitch:
				if facts.SwitchActive(e.ID) {
					e.Activate()
				}
			}
		}
		l.entities = append(l.entities, e)
		l.byID[ed.ID] = e
	}

	// Persisted switches may already satisfy a gate whose own state was
	// never saved.
	l.rule.Update(l)
	for i := range l.events {
		l.events[i].Restored = true
	}
}

func buildEntity(d *Def, ed EntityDef) *entity.Entity {
	kind, _ := entity.ParseKind(ed.Kind)
	w, h := ed.size()
	e := &entity.Entity{
		ID:         d.QualifiedID(ed.ID),
		Kind:       kind,
		Box:        core.NewRect(ed.X, ed.Y, w, h),
		Hidden:     ed.Hidden,
		Reveals:    ed.Reveals,
		Name:       ed.Name,
		Dialogue:   append([]string(nil), ed.Dialogue...),
		Persist:    ed.Persist,
		Unlocks:    ed.Unlocks,
		LockedText: ed.LockedText,
		OpenText:   ed.OpenText,
	}
	switch kind {
	case entity.KindItem:
		e.Item, _ = entity.ParseItemKind(ed.Item)
	case entity.KindDoor:
		e.Item, _ = entity.ParseItemKind(ed.Requires)
	case entity.KindZone:
		e.Item, _ = entity.ParseItemKind(ed.Accepts)
	}
	return e
}

// Step advances the level by dt seconds for the given player. It collects
// every visible item the player overlaps and evaluates the rule. It returns
// true exactly once, on the step the win condition first holds.
func (l *Level) Step(dt float64, p *entity.Player) bool {
	if l.completed {
		return false
	}

	for _, e := range l.entities {
		if e.Kind != entity.KindItem || !e.Visible() || !p.Touches(e) {
			continue
		}
		spec := e.Item.Spec()
		if spec.Carry && p.Inventory != entity.ItemNone {
			continue // hands full
		}
		if !e.Collect() {
			continue
		}
		if spec.Carry {
			p.Inventory = e.Item
		}
		l.emit(Event{Kind: EventItemCollected, EntityID: e.ID, Item: e.Item})
		if spec.TimeBonus {
			l.emit(Event{Kind: EventTimeBonus, EntityID: e.ID, Item: e.Item})
		}
	}

	l.rule.Update(l)
	if l.rule.Satisfied(l, p) {
		l.completed = true
		return true
	}
	return false
}

// interactOrder is the priority in which overlapping entities answer an interact.
var interactOrder = []entity.Kind{entity.KindNPC, entity.KindZone, entity.KindSwitch, entity.KindDoor}

// Interact handles an explicit interact press. It returns a message for the
// player, or false when nothing responded.
func (l *Level) Interact(p *entity.Player) (string, bool) {
	if l.completed {
		return "", false
	}
	for _, kind := range interactOrder {
		for _, e := range l.entities {
			if e.Kind != kind || !p.Touches(e) {
				continue
			}
			if msg, ok := l.interactWith(e, p); ok {
				return msg, true
			}
		}
	}
	if h, ok := l.rule.(hinter); ok {
		return h.Hint(l), true
	}
	return "", false
}

func (l *Level) interactWith(e *entity.Entity, p *entity.Player) (string, bool) {
	switch e.Kind {
	case entity.KindNPC:
		first := !e.Talked()
		line := e.NextLine()
		if line == "" {
			return "", false
		}
		if first {
			l.emit(Event{Kind: EventNPCTalked, EntityID: e.ID})
		}
		return fmt.Sprintf("%s: %s", e.Name, line), true

	case entity.KindZone:
		if e.Activated() {
			return "", false
		}
		if !p.Carrying(e.Item) {
			return fmt.Sprintf("Bring the %s here.", e.Item.Label()), true
		}
		e.Activate()
		p.Inventory = entity.ItemNone
		if target := l.byID[e.Reveals]; target != nil && target.Reveal() {
			l.emit(Event{Kind: EventRevealed, EntityID: target.ID, Item: target.Item})
		}
		return textOr(e.OpenText, fmt.Sprintf("The %s is in place.", e.Item.Label())), true

	case entity.KindSwitch:
		if !e.Activate() {
			return "The switch is already on.", true
		}
		l.emit(Event{Kind: EventSwitchActivated, EntityID: e.ID})
		return "Switch activated!", true

	case entity.KindDoor:
		if e.IsOpen() {
			return "", false
		}
		if e.Item != entity.ItemNone && p.Carrying(e.Item) {
			p.Inventory = entity.ItemNone
			l.openDoor(e)
			return textOr(e.OpenText, "Door unlocked! Walk through to continue."), true
		}
		l.emit(Event{Kind: EventLocked, EntityID: e.ID})
		if e.Item == entity.ItemNone {
			return textOr(e.LockedText, "The door is sealed."), true
		}
		return textOr(e.LockedText, fmt.Sprintf("This door is locked. Find the %s first!", e.Item.Label())), true
	}
	return "", false
}

func textOr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// openDoor opens d and reports it along with any area it unlocks.
func (l *Level) openDoor(d *entity.Entity) {
	if d == nil || !d.Open() {
		return
	}
	l.emit(Event{Kind: EventDoorOpened, EntityID: d.ID})
	if d.Unlocks != "" {
		l.emit(Event{Kind: EventAreaUnlocked, EntityID: d.ID, Area: d.Unlocks})
	}
}

func (l *Level) emit(ev Event) {
	l.events = append(l.events, ev)
}

// Events returns and clears the side effects recorded since the last call.
func (l *Level) Events() []Event {
	if len(l.events) == 0 {
		return nil
	}
	out := make([]Event, len(l.events))
	copy(out, l.events)
	l.events = l.events[:0]
	return out
}

// Objective returns the current hint text for the player.
func (l *Level) Objective(p *entity.Player) string {
	if l.completed {
		return "Level complete!"
	}
	return l.rule.Objective(l, p)
}

// Entity returns the entity with the given local id, or nil.
func (l *Level) Entity(local string) *entity.Entity { return l.byID[local] }

// Entities returns all entities in definition order.
func (l *Level) Entities() []*entity.Entity { return l.entities }

// Completed reports whether the win condition has fired this attempt.
func (l *Level) Completed() bool { return l.completed }

// ID returns the level id.
func (l *Level) ID() string { return l.def.ID }

// Number returns the 1-based level number.
func (l *Level) Number() int { return l.def.Number }

// Title returns the level title.
func (l *Level) Title() string { return l.def.Title }

// Lesson returns the text shown after the level is cleared.
func (l *Level) Lesson() string { return l.def.Lesson }
