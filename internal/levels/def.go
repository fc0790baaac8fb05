// Package levels provides data-driven level definitions, their validation and
// loading, and the runtime that plays one attempt of a level.
package levels

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default entity sizes in world units, used when a definition omits w/h.
const (
	ItemSize   = 20
	DoorWidth  = 30
	DoorHeight = 50
	NPCWidth   = 40
	NPCHeight  = 60
	SwitchSize = 30
	ZoneSize   = 40
)

// Def is a level as written in a YAML file.
type Def struct {
	ID        string      `yaml:"id"`
	Number    int         `yaml:"number"`
	Title     string      `yaml:"title"`
	Objective string      `yaml:"objective"`
	Lesson    string      `yaml:"lesson"`
	Rule      RuleDef     `yaml:"rule"`
	Entities  []EntityDef `yaml:"entities"`

	// Source is the file the definition was read from.
	Source string `yaml:"-"`
}

// RuleDef selects the win condition and names the entities it watches.
// Entity references use the entity's local id within the level.
type RuleDef struct {
	Kind     string   `yaml:"kind"`
	Target   string   `yaml:"target,omitempty"`   // collect_one
	Items    []string `yaml:"items,omitempty"`    // collect_n, and_gate
	Count    int      `yaml:"count,omitempty"`    // collect_n, defaults to len(items)
	Door     string   `yaml:"door,omitempty"`     // key_door, reveal, and_gate, switch_gate
	Zone     string   `yaml:"zone,omitempty"`     // reveal
	Switches []string `yaml:"switches,omitempty"` // switch_gate
}

// EntityDef describes one entity's initial layout.
type EntityDef struct {
	ID   string  `yaml:"id"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w,omitempty"`
	H    float64 `yaml:"h,omitempty"`

	Item     string `yaml:"item,omitempty"`     // item kind
	Hidden   bool   `yaml:"hidden,omitempty"`   // item starts hidden
	Requires string `yaml:"requires,omitempty"` // door key item
	Accepts  string `yaml:"accepts,omitempty"`  // zone carried item
	Reveals  string `yaml:"reveals,omitempty"`  // zone target item id

	Name     string   `yaml:"name,omitempty"`
	Dialogue []string `yaml:"dialogue,omitempty"`

	Persist    bool   `yaml:"persist,omitempty"`
	Unlocks    string `yaml:"unlocks,omitempty"`
	LockedText string `yaml:"locked_text,omitempty"`
	OpenText   string `yaml:"open_text,omitempty"`
}

// size returns the entity's width and height, filling kind defaults.
func (e EntityDef) size() (float64, float64) {
	w, h := e.W, e.H
	if w > 0 && h > 0 {
		return w, h
	}
	switch e.Kind {
	case "door":
		return DoorWidth, DoorHeight
	case "npc":
		return NPCWidth, NPCHeight
	case "switch":
		return SwitchSize, SwitchSize
	case "zone":
		return ZoneSize, ZoneSize
	default:
		return ItemSize, ItemSize
	}
}

func (d *Def) normalize() {
	clean := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	d.Rule.Kind = clean(d.Rule.Kind)
	for i := range d.Entities {
		e := &d.Entities[i]
		e.Kind = clean(e.Kind)
		e.Item = clean(e.Item)
		e.Requires = clean(e.Requires)
		e.Accepts = clean(e.Accepts)
	}
}

// ParseDef decodes a YAML level definition. It does not validate.
func ParseDef(data []byte) (*Def, error) {
	var d Def
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("levels: parse: %w", err)
	}
	return &d, nil
}

// Entity returns the definition with the given local id.
func (d *Def) Entity(id string) (EntityDef, bool) {
	for _, e := range d.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityDef{}, false
}

// QualifiedID returns the game-wide id of a level entity.
func (d *Def) QualifiedID(local string) string {
	return d.ID + "/" + local
}
