// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import "github.com/vovakirdan/ten-second-life/internal/core"

// GameConfig contains all tunable parameters of the game.
type GameConfig struct {
	World    WorldConfig   `yaml:"world"`
	Life     LifeConfig    `yaml:"life"`
	Player   PlayerConfig  `yaml:"player"`
	Messages MessageConfig `yaml:"messages"`
	Input    InputConfig   `yaml:"input"`
	Save     SaveConfig    `yaml:"save"`
}

// WorldConfig defines the logical playfield size in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LifeConfig defines the attempt budget.
type LifeConfig struct {
	Duration       float64 `yaml:"duration"`         // seconds per attempt
	Lives          int     `yaml:"lives"`            // attempts before game over
	TimeBonus      float64 `yaml:"time_bonus"`       // seconds added by a time crystal
	LowTimeWarning float64 `yaml:"low_time_warning"` // seconds left when the tick cue starts
}

// PlayerConfig defines the player's start point, size and speed.
type PlayerConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// MessageConfig defines how long on-screen messages stay visible.
type MessageConfig struct {
	InteractSeconds float64 `yaml:"interact_seconds"`
	BannerSeconds   float64 `yaml:"banner_seconds"`
}

// InputConfig tunes terminal key handling.
type InputConfig struct {
	// HeldKeyMillis is how long a single key press keeps a movement key held.
	// Terminals only report presses, so holding is emulated from key repeat.
	HeldKeyMillis int `yaml:"held_key_ms"`
}

// SaveConfig names the on-disk locations for progress and run history.
type SaveConfig struct {
	Path string `yaml:"path"`
	DB   string `yaml:"db"`
}

// normalize replaces zero or invalid values with defaults so a partial
// YAML file still yields a playable configuration.
func (c *GameConfig) normalize() {
	d := DefaultGameConfig()

	if c.World.Width <= 0 || c.World.Height <= 0 {
		c.World = d.World
	}
	if c.Life.Duration <= 0 {
		c.Life.Duration = d.Life.Duration
	}
	if c.Life.Lives <= 0 {
		c.Life.Lives = d.Life.Lives
	}
	if c.Life.TimeBonus < 0 {
		c.Life.TimeBonus = 0
	}
	if c.Life.LowTimeWarning < 0 {
		c.Life.LowTimeWarning = 0
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		c.Player.Width, c.Player.Height = d.Player.Width, d.Player.Height
	}
	if c.Player.Speed <= 0 {
		c.Player.Speed = d.Player.Speed
	}
	if c.Messages.InteractSeconds <= 0 {
		c.Messages.InteractSeconds = d.Messages.InteractSeconds
	}
	if c.Messages.BannerSeconds <= 0 {
		c.Messages.BannerSeconds = d.Messages.BannerSeconds
	}
	if c.Input.HeldKeyMillis <= 0 {
		c.Input.HeldKeyMillis = d.Input.HeldKeyMillis
	}
}

// Bounds returns the playfield rectangle in world units.
func (c GameConfig) Bounds() core.Rect {
	return core.NewRect(0, 0, c.World.Width, c.World.Height)
}

// PlayerStart returns the player's spawn box.
func (c GameConfig) PlayerStart() core.Rect {
	return core.NewRect(c.Player.StartX, c.Player.StartY, c.Player.Width, c.Player.Height)
}
