package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:  1024,
			Height: 768,
		},
		Life: LifeConfig{
			Duration:       10.0,
			Lives:          3,
			TimeBonus:      10.0,
			LowTimeWarning: 3.0,
		},
		Player: PlayerConfig{
			StartX: 50,
			StartY: 384,
			Width:  24,
			Height: 32,
			Speed:  200,
		},
		Messages: MessageConfig{
			InteractSeconds: 2.0,
			BannerSeconds:   3.0,
		},
		Input: InputConfig{
			HeldKeyMillis: 150,
		},
		Save: SaveConfig{
			Path: "~/.tensec/world.yaml",
			DB:   "~/.tensec/tensec.db",
		},
	}
}
