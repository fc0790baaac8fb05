package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg GameConfig
	require.NoError(t, yaml.Unmarshal(defaultGameYAML, &cfg))
	cfg.normalize()

	assert.Equal(t, DefaultGameConfig(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("life:\n  duration: 5\n  lives: 1\nplayer:\n  speed: 300\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Life.Duration)
	assert.Equal(t, 1, cfg.Life.Lives)
	assert.Equal(t, 300.0, cfg.Player.Speed)
	// Untouched sections keep their defaults.
	assert.Equal(t, 1024.0, cfg.World.Width)
	assert.Equal(t, 10.0, cfg.Life.TimeBonus)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("life: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestNormalizeRepairsInvalidValues(t *testing.T) {
	cfg := GameConfig{
		Life:   LifeConfig{Duration: -1, Lives: 0, TimeBonus: -3},
		Player: PlayerConfig{Speed: 0},
	}
	cfg.normalize()

	d := DefaultGameConfig()
	assert.Equal(t, d.Life.Duration, cfg.Life.Duration)
	assert.Equal(t, d.Life.Lives, cfg.Life.Lives)
	assert.Equal(t, 0.0, cfg.Life.TimeBonus)
	assert.Equal(t, d.Player.Speed, cfg.Player.Speed)
	assert.Equal(t, d.World, cfg.World)
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"EASY", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", DifficultyNormal, true},
	}
	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
		} else {
			assert.NoError(t, err, tc.in)
		}
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultGameConfig()
	ApplyPreset(&cfg, DifficultyNormal)
	assert.Equal(t, DefaultGameConfig(), cfg)

	ApplyPreset(&cfg, DifficultyHard)
	assert.Equal(t, 2, cfg.Life.Lives)
	assert.Less(t, cfg.Life.Duration, DefaultGameConfig().Life.Duration)

	ApplyPreset(&cfg, DifficultyEasy)
	assert.Equal(t, 5, cfg.Life.Lives)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandHome("~/x/y"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "rel", ExpandHome("rel"))
}
