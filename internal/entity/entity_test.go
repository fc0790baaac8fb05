package entity

import (
	"math"
	"testing"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

func TestFlagsAreMonotonic(t *testing.T) {
	item := &Entity{Kind: KindItem, Item: ItemCoin}
	if !item.Collect() {
		t.Fatal("first Collect() = false, expected true")
	}
	if item.Collect() {
		t.Error("second Collect() = true, expected false")
	}
	if !item.Collected() || item.Visible() {
		t.Error("collected item should stay collected and invisible")
	}

	door := &Entity{Kind: KindDoor}
	if !door.Open() || door.Open() || !door.IsOpen() {
		t.Error("door should open exactly once and stay open")
	}

	sw := &Entity{Kind: KindSwitch}
	if !sw.Activate() || sw.Activate() || !sw.Activated() {
		t.Error("switch should activate exactly once and stay active")
	}
}

func TestWrongKindIgnoresToggles(t *testing.T) {
	door := &Entity{Kind: KindDoor}
	if door.Collect() || door.Activate() || door.Reveal() {
		t.Error("a door should ignore Collect/Activate/Reveal")
	}
	item := &Entity{Kind: KindItem}
	if item.Open() {
		t.Error("an item should ignore Open")
	}
}

func TestHiddenItemNeedsReveal(t *testing.T) {
	key := &Entity{Kind: KindItem, Item: ItemKey, Hidden: true}

	if key.Visible() {
		t.Error("hidden item should not be visible")
	}
	if key.Collect() {
		t.Error("hidden item should not be collectible")
	}
	if !key.Reveal() {
		t.Fatal("Reveal() = false, expected true")
	}
	if key.Reveal() {
		t.Error("second Reveal() = true, expected false")
	}
	if !key.Collect() {
		t.Error("revealed item should be collectible")
	}
}

func TestNextLineClampsOnLast(t *testing.T) {
	npc := &Entity{Kind: KindNPC, Dialogue: []string{"one", "two"}}

	if npc.Talked() {
		t.Error("fresh NPC should not be talked to")
	}
	got := []string{npc.NextLine(), npc.NextLine(), npc.NextLine()}
	want := []string{"one", "two", "two"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NextLine() #%d = %q, expected %q", i, got[i], want[i])
		}
	}
	if !npc.Talked() {
		t.Error("NPC should be talked to after NextLine")
	}

	silent := &Entity{Kind: KindNPC}
	if silent.NextLine() != "" {
		t.Error("NPC without dialogue should return empty line")
	}
}

func TestParseItemKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemKind
		wantErr bool
	}{
		{"key", ItemKey, false},
		{" Time_Crystal ", ItemTimeCrystal, false},
		{"", ItemNone, false},
		{"sword", ItemNone, true},
	}
	for _, tc := range tests {
		got, err := ParseItemKind(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseItemKind(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseItemKind(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	if ItemRedCrystal.Label() != "red crystal" {
		t.Errorf("Label() = %q, expected %q", ItemRedCrystal.Label(), "red crystal")
	}
	if !ItemTimeCrystal.Spec().TimeBonus || !ItemKey.Spec().Carry || ItemCoin.Spec().Carry {
		t.Error("item spec table has wrong behavior flags")
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("NPC")
	if err != nil || k != KindNPC {
		t.Errorf("ParseKind(NPC) = %v, %v", k, err)
	}
	if _, err := ParseKind("wall"); err == nil {
		t.Error("ParseKind(wall) should fail")
	}
}

func TestPlayerMove(t *testing.T) {
	bounds := core.NewRect(0, 0, 1024, 768)
	p := NewPlayer(core.Vec{X: 50, Y: 384}, 24, 32, 200)

	p.Move(core.Vec{X: 1}, 0.5, bounds)
	if p.Box.X != 150 || p.Box.Y != 384 {
		t.Errorf("after move right, pos = (%v, %v), expected (150, 384)", p.Box.X, p.Box.Y)
	}

	p.ResetPosition()
	p.Move(core.Vec{X: 1, Y: 1}, 1, bounds)
	moved := math.Hypot(p.Box.X-50, p.Box.Y-384)
	if math.Abs(moved-200) > 1e-9 {
		t.Errorf("diagonal move distance = %v, expected 200", moved)
	}

	p.Move(core.Vec{X: -1}, 10, bounds)
	if p.Box.X != 0 {
		t.Errorf("player should clamp at left edge, x = %v", p.Box.X)
	}
	p.Move(core.Vec{Y: 1}, 10, bounds)
	if p.Box.Bottom() != 768 {
		t.Errorf("player should clamp at bottom edge, bottom = %v", p.Box.Bottom())
	}
}

func TestPlayerResetPositionClearsInventory(t *testing.T) {
	p := NewPlayer(core.Vec{X: 10, Y: 20}, 24, 32, 200)
	p.Box.X = 500
	p.Inventory = ItemKey

	if !p.Carrying(ItemKey) || p.Carrying(ItemNone) {
		t.Error("Carrying() misreports inventory")
	}

	p.ResetPosition()
	if p.Box.X != 10 || p.Box.Y != 20 || p.Inventory != ItemNone {
		t.Errorf("ResetPosition() left player at (%v, %v) holding %v", p.Box.X, p.Box.Y, p.Inventory)
	}
}
