package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ten-second-life/internal/entity"
)

// RuleKind enumerates the supported win conditions.
type RuleKind string

const (
	// RuleCollectOne wins when a single item is picked up.
	RuleCollectOne RuleKind = "collect_one"
	// RuleKeyDoor wins when the player walks through a door unlocked with a carried key.
	RuleKeyDoor RuleKind = "key_door"
	// RuleCollectN wins when Count of the listed items are picked up, in any order.
	RuleCollectN RuleKind = "collect_n"
	// RuleReveal is a key door whose key stays hidden until a carried item is
	// placed in a zone.
	RuleReveal RuleKind = "reveal"
	// RuleAndGate opens the exit once every listed item is collected.
	RuleAndGate RuleKind = "and_gate"
	// RuleSwitchGate opens the exit once every listed switch is active.
	RuleSwitchGate RuleKind = "switch_gate"
)

var ruleKinds = []RuleKind{RuleCollectOne, RuleKeyDoor, RuleCollectN, RuleReveal, RuleAndGate, RuleSwitchGate}

// ParseRuleKind looks up a rule kind by name.
func ParseRuleKind(s string) (RuleKind, error) {
	k := RuleKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ruleKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown rule kind %q", s)
}

// Rule is the win-condition strategy of a level.
type Rule interface {
	// Update runs after the step's pickups and may open gated doors.
	Update(l *Level)
	// Satisfied reports whether the win condition holds right now.
	Satisfied(l *Level, p *entity.Player) bool
	// Objective describes what the player should do next.
	Objective(l *Level, p *entity.Player) string
}

// hinter is implemented by rules that answer an interact press that hit nothing.
type hinter interface {
	Hint(l *Level) string
}

func newRule(d *Def) (Rule, error) {
	kind, err := ParseRuleKind(d.Rule.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case RuleCollectOne:
		return collectOne{target: d.Rule.Target}, nil
	case RuleKeyDoor:
		return exitDoor{door: d.Rule.Door}, nil
	case RuleCollectN:
		count := d.Rule.Count
		if count == 0 {
			count = len(d.Rule.Items)
		}
		return collectN{items: d.Rule.Items, count: count}, nil
	case RuleReveal:
		return reveal{zone: d.Rule.Zone, exit: exitDoor{door: d.Rule.Door}}, nil
	case RuleAndGate:
		return gate{needs: d.Rule.Items, done: (*entity.Entity).Collected, door: d.Rule.Door}, nil
	case RuleSwitchGate:
		return gate{needs: d.Rule.Switches, done: (*entity.Entity).Activated, door: d.Rule.Door, noun: "switch"}, nil
	}
	return nil, fmt.Errorf("unhandled rule kind %q", kind)
}

// plural returns noun in the form matching n.
func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	if strings.HasSuffix(noun, "h") {
		return noun + "es"
	}
	return noun + "s"
}

type collectOne struct {
	target string
}

func (r collectOne) Update(*Level) {}

func (r collectOne) Satisfied(l *Level, _ *entity.Player) bool {
	return l.Entity(r.target).Collected()
}

func (r collectOne) Objective(l *Level, _ *entity.Player) string {
	return fmt.Sprintf("Collect the %s", l.Entity(r.target).Item.Label())
}

// exitDoor wins by walking through a door that a carried key unlocked.
type exitDoor struct {
	door string
}

func (r exitDoor) Update(*Level) {}

func (r exitDoor) Satisfied(l *Level, p *entity.Player) bool {
	d := l.Entity(r.door)
	return d.IsOpen() && p.Touches(d)
}

func (r exitDoor) Objective(l *Level, p *entity.Player) string {
	d := l.Entity(r.door)
	switch {
	case d.IsOpen():
		return "Walk through the open door!"
	case p.Carrying(d.Item):
		return "Press SPACE at the door to unlock it"
	default:
		return fmt.Sprintf("Find the %s and unlock the door", d.Item.Label())
	}
}

type collectN struct {
	items []string
	count int
}

func (r collectN) collected(l *Level) int {
	n := 0
	for _, id := range r.items {
		if l.Entity(id).Collected() {
			n++
		}
	}
	return n
}

func (r collectN) Update(*Level) {}

func (r collectN) Satisfied(l *Level, _ *entity.Player) bool {
	return r.collected(l) >= r.count
}

func (r collectN) Objective(l *Level, _ *entity.Player) string {
	left := r.count - r.collected(l)
	if left <= 0 {
		return "All collected! Well done!"
	}
	noun := l.Entity(r.items[0]).Item.Label()
	return fmt.Sprintf("Collect %d more %s!", left, plural(left, noun))
}

func (r collectN) Hint(l *Level) string {
	return r.Objective(l, nil)
}

type reveal struct {
	zone string
	exit exitDoor
}

func (r reveal) Update(*Level) {}

func (r reveal) Satisfied(l *Level, p *entity.Player) bool {
	return r.exit.Satisfied(l, p)
}

func (r reveal) Objective(l *Level, p *entity.Player) string {
	zone := l.Entity(r.zone)
	target := l.Entity(zone.Reveals)
	switch {
	case !zone.Activated() && p.Carrying(zone.Item):
		return fmt.Sprintf("Press SPACE at the marked spot to place the %s", zone.Item.Label())
	case !zone.Activated():
		return fmt.Sprintf("Pick up the %s", zone.Item.Label())
	case !target.Collected():
		return fmt.Sprintf("Grab the revealed %s!", target.Item.Label())
	default:
		return r.exit.Objective(l, p)
	}
}

// gate opens its door once every needed entity reports done, then wins on
// walking through it.
type gate struct {
	needs []string
	done  func(*entity.Entity) bool
	door  string
	noun  string // derived from the first item when empty
}

func (r gate) remaining(l *Level) int {
	n := 0
	for _, id := range r.needs {
		if !r.done(l.Entity(id)) {
			n++
		}
	}
	return n
}

func (r gate) Update(l *Level) {
	if r.remaining(l) == 0 {
		l.openDoor(l.Entity(r.door))
	}
}

func (r gate) Satisfied(l *Level, p *entity.Player) bool {
	d := l.Entity(r.door)
	return d.IsOpen() && p.Touches(d)
}

func (r gate) Objective(l *Level, _ *entity.Player) string {
	if l.Entity(r.door).IsOpen() {
		return "Walk through the open door!"
	}
	for _, e := range l.Entities() {
		if e.Kind == entity.KindNPC && !e.Talked() {
			return fmt.Sprintf("Talk to the %s (SPACE)", strings.ToLower(e.Name))
		}
	}
	noun := r.noun
	if noun == "" {
		words := strings.Fields(l.Entity(r.needs[0]).Item.Label())
		noun = words[len(words)-1]
	}
	left := r.remaining(l)
	return fmt.Sprintf("%d of %d done, %d %s to go", len(r.needs)-left, len(r.needs), left, plural(left, noun))
}
