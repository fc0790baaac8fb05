package game

import (
	"github.com/vovakirdan/ten-second-life/internal/config"
	"github.com/vovakirdan/ten-second-life/internal/entity"
	"github.com/vovakirdan/ten-second-life/internal/levels"
	"github.com/vovakirdan/ten-second-life/internal/progress"
)

// State returns the current state.
func (g *Game) State() State { return g.state }

// Lives returns the lives left in the current run.
func (g *Game) Lives() int { return g.lives }

// Config returns the configuration the game runs with.
func (g *Game) Config() config.GameConfig { return g.cfg }

// Catalog returns the active level catalog.
func (g *Game) Catalog() *levels.Catalog { return g.catalog }

// Level returns the level being played, or nil in the menu.
func (g *Game) Level() *levels.Level { return g.level }

// Player returns the player.
func (g *Game) Player() *entity.Player { return g.player }

// Remaining returns the seconds left in the current life.
func (g *Game) Remaining() float64 { return g.timer.Remaining() }

// TimerFraction returns the remaining share of a full life, in [0, 1].
func (g *Game) TimerFraction() float64 { return g.timer.Fraction() }

// Message returns the interact or bonus message currently shown.
func (g *Game) Message() string { return g.message }

// Banner returns the level intro banner currently shown.
func (g *Game) Banner() string { return g.banner }

// Quote returns the quote picked for the last death.
func (g *Game) Quote() string { return g.quote }

// LastRun returns the most recently finished run.
func (g *Game) LastRun() RunRecord { return g.lastRun }

// World returns a copy of the world state.
func (g *Game) World() *progress.WorldState { return g.world.Clone() }

// Objective returns the current objective text, or "" outside a level.
func (g *Game) Objective() string {
	if g.level == nil {
		return ""
	}
	return g.level.Objective(g.player)
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:     g.state,
		Lives:     g.lives,
		Remaining: g.timer.Remaining(),
		PlayerX:   g.player.Box.X,
		PlayerY:   g.player.Box.Y,
		Inventory: g.player.Inventory.String(),
		Message:   g.message,
		Attempts:  g.run.attempts,
	}
	if g.level != nil {
		s.LevelID = g.level.ID()
	}
	return s
}
