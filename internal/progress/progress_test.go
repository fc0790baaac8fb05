package progress

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *WorldState {
	w := New()
	w.DoorsOpened.Add("the_door/exit")
	w.ItemsCollected.Add("first_steps/orb")
	w.ItemsCollected.Add("time_pressure/coin_a")
	w.NPCsTalkedTo.Add("the_helper/guide")
	w.SwitchesActivated.Add("echoes/switch_a")
	w.AreasUnlocked.Add("garden")
	w.LevelsCompleted.Add("first_steps")
	w.CurrentLevel = "the_door"
	w.LifeCount = 7
	w.TotalTimePlayed = 53.25
	return w
}

func TestSetAddDedups(t *testing.T) {
	var s Set
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("a"))
	assert.False(t, s.Add(""))
	assert.True(t, s.Add("b"))
	assert.Equal(t, Set{"a", "b"}, s)
	assert.True(t, s.Has("b"))
	assert.Equal(t, 2, s.Len())
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, name := range []string{"world.yaml", "world.json"} {
		t.Run(name, func(t *testing.T) {
			store := NewFileStore(filepath.Join(t.TempDir(), "nested", name))
			original := sampleState()

			require.NoError(t, store.Save(original))
			loaded, err := store.Load()
			require.NoError(t, err)

			assert.Equal(t, original, loaded)
		})
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "none.yaml"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSave)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	logger := log.New(io.Discard)

	t.Run("missing", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "none.json"))
		assert.Equal(t, New(), LoadOrDefault(store, logger))
	})

	t.Run("corrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "world.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		assert.Equal(t, New(), LoadOrDefault(NewFileStore(path), logger))
	})

	t.Run("valid", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "world.yaml"))
		require.NoError(t, store.Save(sampleState()))
		assert.Equal(t, sampleState(), LoadOrDefault(store, nil))
	})
}

func TestLoadNormalizesHandEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	data := []byte("doors_opened: [a, a, b]\nlife_count: -4\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	w, err := NewFileStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t, Set{"a", "b"}, w.DoorsOpened)
	assert.Equal(t, 0, w.LifeCount)
	assert.NotNil(t, w.SwitchesActivated)
}

func TestMemoryStore(t *testing.T) {
	m := &MemoryStore{}
	_, err := m.Load()
	assert.ErrorIs(t, err, ErrNoSave)

	w := sampleState()
	require.NoError(t, m.Save(w))
	w.DoorsOpened.Add("mutated")

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.False(t, loaded.DoorsOpened.Has("mutated"), "store must keep its own copy")
	assert.Equal(t, 1, m.Saves())

	m.Err = errors.New("disk full")
	assert.Error(t, m.Save(w))
	assert.Equal(t, 1, m.Saves())
}

func TestRecordAttemptAndFacts(t *testing.T) {
	w := New()
	w.RecordAttempt(10)
	w.RecordAttempt(-1)
	w.CompleteLevel("first_steps")
	w.CompleteLevel("first_steps")

	assert.Equal(t, 2, w.LifeCount)
	assert.Equal(t, 10.0, w.TotalTimePlayed)
	assert.Equal(t, Set{"first_steps"}, w.LevelsCompleted)

	w.SwitchesActivated.Add("echoes/a")
	var facts Facts = w
	assert.True(t, facts.SwitchActive("echoes/a"))
	assert.False(t, facts.DoorOpen("echoes/a"))
}
