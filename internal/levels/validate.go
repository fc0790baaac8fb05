package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ten-second-life/internal/core"
	"github.com/vovakirdan/ten-second-life/internal/entity"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate performs comprehensive validation of a level definition.
// Checks:
//   - Identity fields are present
//   - Entity ids are unique and kinds/items are known
//   - Every entity lies inside world
//   - The rule references entities of the right kinds
//   - No win-triggering item overlaps the player start
//
// Kind and item names are lower-cased in place first.
func Validate(d *Def, world, start core.Rect) error {
	d.normalize()
	if err := validateIdentity(d); err != nil {
		return err
	}
	if err := validateEntities(d, world); err != nil {
		return err
	}
	if err := validateRule(d); err != nil {
		return err
	}
	return validateStart(d, start)
}

func validateIdentity(d *Def) error {
	if d.ID == "" || strings.ContainsAny(d.ID, "/ ") {
		return invalid("BAD_ID", "level id %q must be non-empty without '/' or spaces", d.ID)
	}
	if d.Number <= 0 {
		return invalid("BAD_NUMBER", "level %s: number must be positive, got %d", d.ID, d.Number)
	}
	if strings.TrimSpace(d.Title) == "" {
		return invalid("MISSING_TITLE", "level %s has no title", d.ID)
	}
	return nil
}

func validateEntities(d *Def, world core.Rect) error {
	seen := make(map[string]bool, len(d.Entities))
	for _, e := range d.Entities {
		if e.ID == "" || strings.Contains(e.ID, "/") {
			return invalid("BAD_ENTITY_ID", "level %s: entity id %q must be non-empty without '/'", d.ID, e.ID)
		}
		if seen[e.ID] {
			return invalid("DUPLICATE_ENTITY", "level %s: entity %q defined twice", d.ID, e.ID)
		}
		seen[e.ID] = true

		kind, err := entity.ParseKind(e.Kind)
		if err != nil {
			return invalid("BAD_KIND", "level %s: entity %s: %v", d.ID, e.ID, err)
		}
		if err := validateItemFields(d, e, kind); err != nil {
			return err
		}

		w, h := e.size()
		box := core.NewRect(e.X, e.Y, w, h)
		if box.X < world.X || box.Y < world.Y || box.Right() > world.Right() || box.Bottom() > world.Bottom() {
			return invalid("OUT_OF_BOUNDS", "level %s: entity %s at (%g, %g) size %gx%g is outside the world",
				d.ID, e.ID, e.X, e.Y, w, h)
		}
	}

	// Zone reveal targets must be hidden items.
	for _, e := range d.Entities {
		if e.Kind != "zone" || e.Reveals == "" {
			continue
		}
		target, ok := d.Entity(e.Reveals)
		if !ok || target.Kind != "item" || !target.Hidden {
			return invalid("BAD_REFERENCE", "level %s: zone %s reveals %q, which is not a hidden item", d.ID, e.ID, e.Reveals)
		}
	}
	return nil
}

func validateItemFields(d *Def, e EntityDef, kind entity.Kind) error {
	for field, name := range map[string]string{"item": e.Item, "requires": e.Requires, "accepts": e.Accepts} {
		if _, err := entity.ParseItemKind(name); err != nil {
			return invalid("BAD_ITEM", "level %s: entity %s: %s: %v", d.ID, e.ID, field, err)
		}
	}
	switch kind {
	case entity.KindItem:
		if k, _ := entity.ParseItemKind(e.Item); k == entity.ItemNone {
			return invalid("BAD_ITEM", "level %s: item %s has no item kind", d.ID, e.ID)
		}
	case entity.KindNPC:
		if e.Name == "" {
			return invalid("MISSING_NAME", "level %s: npc %s has no name", d.ID, e.ID)
		}
	case entity.KindZone:
		if e.Accepts == "" {
			return invalid("BAD_ITEM", "level %s: zone %s accepts no item", d.ID, e.ID)
		}
	}
	return nil
}

// ref checks that id names an entity of the given kind.
func ref(d *Def, role, id, kind string) (EntityDef, error) {
	e, ok := d.Entity(id)
	if !ok {
		return e, invalid("BAD_REFERENCE", "level %s: rule %s %q does not exist", d.ID, role, id)
	}
	if e.Kind != kind {
		return e, invalid("BAD_REFERENCE", "level %s: rule %s %q is a %s, expected %s", d.ID, role, id, e.Kind, kind)
	}
	return e, nil
}

func refs(d *Def, role string, ids []string, kind string) error {
	if len(ids) == 0 {
		return invalid("BAD_REFERENCE", "level %s: rule needs at least one %s", d.ID, role)
	}
	for _, id := range ids {
		if _, err := ref(d, role, id, kind); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(d *Def) error {
	kind, err := ParseRuleKind(d.Rule.Kind)
	if err != nil {
		return invalid("BAD_RULE", "level %s: %v", d.ID, err)
	}

	switch kind {
	case RuleCollectOne:
		_, err = ref(d, "target", d.Rule.Target, "item")
		return err

	case RuleKeyDoor:
		door, err := ref(d, "door", d.Rule.Door, "door")
		if err != nil {
			return err
		}
		if door.Requires == "" {
			return invalid("BAD_REFERENCE", "level %s: key_door door %s requires no key", d.ID, door.ID)
		}
		if !hasItemOfKind(d, door.Requires) {
			return invalid("BAD_REFERENCE", "level %s: no %s item opens door %s", d.ID, door.Requires, door.ID)
		}
		return nil

	case RuleCollectN:
		if err := refs(d, "item", d.Rule.Items, "item"); err != nil {
			return err
		}
		if d.Rule.Count < 0 || d.Rule.Count > len(d.Rule.Items) {
			return invalid("BAD_COUNT", "level %s: collect_n count %d outside [1, %d]", d.ID, d.Rule.Count, len(d.Rule.Items))
		}
		return nil

	case RuleReveal:
		zone, err := ref(d, "zone", d.Rule.Zone, "zone")
		if err != nil {
			return err
		}
		if zone.Reveals == "" {
			return invalid("BAD_REFERENCE", "level %s: reveal zone %s reveals nothing", d.ID, zone.ID)
		}
		if !hasItemOfKind(d, zone.Accepts) {
			return invalid("BAD_REFERENCE", "level %s: no %s item for zone %s", d.ID, zone.Accepts, zone.ID)
		}
		door, err := ref(d, "door", d.Rule.Door, "door")
		if err != nil {
			return err
		}
		if door.Requires == "" {
			return invalid("BAD_REFERENCE", "level %s: reveal door %s requires no key", d.ID, door.ID)
		}
		return nil

	case RuleAndGate:
		if err := refs(d, "item", d.Rule.Items, "item"); err != nil {
			return err
		}
		_, err = ref(d, "door", d.Rule.Door, "door")
		return err

	case RuleSwitchGate:
		if err := refs(d, "switch", d.Rule.Switches, "switch"); err != nil {
			return err
		}
		_, err = ref(d, "door", d.Rule.Door, "door")
		return err
	}
	return nil
}

func hasItemOfKind(d *Def, item string) bool {
	for _, e := range d.Entities {
		if e.Kind == "item" && e.Item == item && !e.Hidden {
			return true
		}
	}
	return false
}

// validateStart rejects layouts that are won the moment the player appears.
func validateStart(d *Def, start core.Rect) error {
	var targets []string
	kind, _ := ParseRuleKind(d.Rule.Kind)
	switch kind {
	case RuleCollectOne:
		targets = []string{d.Rule.Target}
	case RuleCollectN:
		targets = d.Rule.Items
	}
	for _, id := range targets {
		e, _ := d.Entity(id)
		w, h := e.size()
		if start.Intersects(core.NewRect(e.X, e.Y, w, h)) {
			return invalid("INSTANT_WIN", "level %s: %s overlaps the player start", d.ID, id)
		}
	}
	return nil
}
