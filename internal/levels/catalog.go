package levels

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/ten-second-life/internal/core"
)

// Info is the summary of a level shown in listings.
type Info struct {
	ID        string
	Number    int
	Title     string
	Objective string
	Rule      string
}

// Catalog is the ordered, validated set of levels a game plays through.
// It is immutable once built; reloading produces a new Catalog.
type Catalog struct {
	defs  []*Def
	index map[string]int
}

// NewCatalog validates defs against the world and player start, and orders
// them by number. Level ids and numbers must be unique.
func NewCatalog(defs []*Def, world, start core.Rect) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("levels: catalog is empty")
	}

	sorted := make([]*Def, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	c := &Catalog{defs: sorted, index: make(map[string]int, len(sorted))}
	for i, d := range sorted {
		if err := Validate(d, world, start); err != nil {
			if d.Source != "" {
				return nil, fmt.Errorf("levels: %s: %w", d.Source, err)
			}
			return nil, fmt.Errorf("levels: %w", err)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("levels: %w", invalid("DUPLICATE_LEVEL", "level id %q used twice", d.ID))
		}
		if i > 0 && sorted[i-1].Number == d.Number {
			return nil, fmt.Errorf("levels: %w", invalid("DUPLICATE_LEVEL",
				"levels %s and %s share number %d", sorted[i-1].ID, d.ID, d.Number))
		}
		c.index[d.ID] = i
	}
	return c, nil
}

// LoadCatalog builds a catalog from dir, or from the built-in levels when
// dir is empty.
func LoadCatalog(dir string, world, start core.Rect, logger *log.Logger) (*Catalog, error) {
	loader := BuiltinLoader()
	if dir != "" {
		loader = NewLoader(dir, logger)
	}
	defs, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	return NewCatalog(defs, world, start)
}

// Len returns the number of levels.
func (c *Catalog) Len() int { return len(c.defs) }

// At returns the level at position i (0-based, in play order).
func (c *Catalog) At(i int) (*Def, bool) {
	if i < 0 || i >= len(c.defs) {
		return nil, false
	}
	return c.defs[i], true
}

// Index returns the play-order position of the level with the given id.
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Next returns the id of the level after id, or false if id is the last one.
func (c *Catalog) Next(id string) (string, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.defs) {
		return "", false
	}
	return c.defs[i+1].ID, true
}

// First returns the first level's id.
func (c *Catalog) First() string { return c.defs[0].ID }

// List returns summaries of all levels in play order.
func (c *Catalog) List() []Info {
	out := make([]Info, len(c.defs))
	for i, d := range c.defs {
		out[i] = Info{ID: d.ID, Number: d.Number, Title: d.Title, Objective: d.Objective, Rule: d.Rule.Kind}
	}
	return out
}
