package entity

import "github.com/vovakirdan/ten-second-life/internal/core"

// Player is the controllable character. It is owned by the game and
// repositioned, never recreated, between attempts.
type Player struct {
	Box       core.Rect
	Start     core.Vec
	Speed     float64 // world units per second
	Inventory ItemKind
}

// NewPlayer creates a player of the given size standing at start.
func NewPlayer(start core.Vec, w, h, speed float64) *Player {
	return &Player{
		Box:   core.NewRect(start.X, start.Y, w, h),
		Start: start,
		Speed: speed,
	}
}

// Move advances the player along dir for dt seconds and keeps it inside bounds.
// Diagonal input is normalized so every direction has the same speed.
func (p *Player) Move(dir core.Vec, dt float64, bounds core.Rect) {
	step := dir.Normalize().Scale(p.Speed * dt)
	p.Box = p.Box.At(p.Box.Pos().Add(step)).ClampInside(bounds)
}

// ResetPosition puts the player back at its start point with empty hands.
func (p *Player) ResetPosition() {
	p.Box = p.Box.At(p.Start)
	p.Inventory = ItemNone
}

// Carrying reports whether the player holds an item of kind k.
func (p *Player) Carrying(k ItemKind) bool {
	return k != ItemNone && p.Inventory == k
}

// Touches reports whether the player overlaps e.
func (p *Player) Touches(e *Entity) bool {
	return p.Box.Intersects(e.Box)
}
