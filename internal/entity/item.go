package entity

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

// ItemKind enumerates the collectible item types.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemOrb
	ItemKey
	ItemCoin
	ItemTorch
	ItemTimeCrystal
	ItemRedCrystal
	ItemBlueCrystal
	ItemGreenCrystal
)

// ItemSpec describes how an item kind looks, sounds and behaves when picked up.
type ItemSpec struct {
	Name  string
	Glyph rune
	Color core.Color
	// Carry means collecting the item puts it in the player's hand.
	Carry bool
	// TimeBonus means collecting the item extends the current life.
	TimeBonus bool
	Sound     core.Sound
}

var itemSpecs = map[ItemKind]ItemSpec{
	ItemNone:         {Name: "none", Glyph: ' ', Color: core.ColorDefault},
	ItemOrb:          {Name: "orb", Glyph: '◉', Color: core.ColorBrightYellow, Sound: core.SoundPickup},
	ItemKey:          {Name: "key", Glyph: '⚷', Color: core.ColorGold, Carry: true, Sound: core.SoundKey},
	ItemCoin:         {Name: "coin", Glyph: '●', Color: core.ColorYellow, Sound: core.SoundPickup},
	ItemTorch:        {Name: "torch", Glyph: '¡', Color: core.ColorOrange, Carry: true, Sound: core.SoundPickup},
	ItemTimeCrystal:  {Name: "time_crystal", Glyph: '◆', Color: core.ColorBrightCyan, TimeBonus: true, Sound: core.SoundTimeBonus},
	ItemRedCrystal:   {Name: "red_crystal", Glyph: '♦', Color: core.ColorBrightRed, Sound: core.SoundPickup},
	ItemBlueCrystal:  {Name: "blue_crystal", Glyph: '♦', Color: core.ColorBrightBlue, Sound: core.SoundPickup},
	ItemGreenCrystal: {Name: "green_crystal", Glyph: '♦', Color: core.ColorBrightGreen, Sound: core.SoundPickup},
}

// Spec returns the lookup-table entry for k.
func (k ItemKind) Spec() ItemSpec {
	if s, ok := itemSpecs[k]; ok {
		return s
	}
	return itemSpecs[ItemNone]
}

// String returns the item kind's snake_case name.
func (k ItemKind) String() string {
	return k.Spec().Name
}

// Label returns a human-readable name ("red crystal").
func (k ItemKind) Label() string {
	return strings.ReplaceAll(k.String(), "_", " ")
}

// ParseItemKind looks up an item kind by name. The empty string maps to ItemNone.
func ParseItemKind(name string) (ItemKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ItemNone, nil
	}
	for k, s := range itemSpecs {
		if s.Name == name {
			return k, nil
		}
	}
	return ItemNone, fmt.Errorf("unknown item kind %q", name)
}
