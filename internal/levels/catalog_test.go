package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
id: sample
number: 1
title: Sample
rule: {kind: collect_one, target: gem}
entities:
  - {id: gem, kind: item, item: orb, x: 500, y: 100}
`

func TestBuiltinCatalog(t *testing.T) {
	c := builtin(t)

	require.Equal(t, 6, c.Len())
	assert.Equal(t, "first_steps", c.First())

	wantOrder := []string{"first_steps", "the_door", "time_pressure", "shadow_basics", "the_helper", "echoes"}
	for i, info := range c.List() {
		assert.Equal(t, wantOrder[i], info.ID)
		assert.Equal(t, i+1, info.Number)
	}

	next, ok := c.Next("the_door")
	assert.True(t, ok)
	assert.Equal(t, "time_pressure", next)

	_, ok = c.Next("echoes")
	assert.False(t, ok, "the last level has no successor")
	_, ok = c.At(c.Len())
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{"valid", validYAML, ""},
		{"missing id", `{number: 1, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: item, item: orb, x: 500, y: 0}]}`, "BAD_ID"},
		{"zero number", `{id: x, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: item, item: orb, x: 500, y: 0}]}`, "BAD_NUMBER"},
		{"duplicate entity", `{id: x, number: 1, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: item, item: orb, x: 500, y: 0}, {id: a, kind: item, item: coin, x: 600, y: 0}]}`, "DUPLICATE_ENTITY"},
		{"unknown kind", `{id: x, number: 1, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: wall, x: 500, y: 0}]}`, "BAD_KIND"},
		{"unknown item", `{id: x, number: 1, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: item, item: sword, x: 500, y: 0}]}`, "BAD_ITEM"},
		{"out of bounds", `{id: x, number: 1, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: item, item: orb, x: 1010, y: 0}]}`, "OUT_OF_BOUNDS"},
		{"unknown rule", `{id: x, number: 1, title: T, rule: {kind: race}, entities: [{id: a, kind: item, item: orb, x: 500, y: 0}]}`, "BAD_RULE"},
		{"dangling target", `{id: x, number: 1, title: T, rule: {kind: collect_one, target: b}, entities: [{id: a, kind: item, item: orb, x: 500, y: 0}]}`, "BAD_REFERENCE"},
		{"door without key item", `{id: x, number: 1, title: T, rule: {kind: key_door, door: d}, entities: [{id: d, kind: door, requires: key, x: 500, y: 0}]}`, "BAD_REFERENCE"},
		{"count too high", `{id: x, number: 1, title: T, rule: {kind: collect_n, items: [a], count: 2}, entities: [{id: a, kind: item, item: coin, x: 500, y: 0}]}`, "BAD_COUNT"},
		{"instant win", `{id: x, number: 1, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: item, item: orb, x: 55, y: 390}]}`, "INSTANT_WIN"},
		{"reveal of visible item", `{id: x, number: 1, title: T, rule: {kind: collect_one, target: a}, entities: [{id: a, kind: item, item: orb, x: 500, y: 0}, {id: z, kind: zone, accepts: torch, reveals: a, x: 600, y: 0}]}`, "BAD_REFERENCE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def, err := ParseDef([]byte(tc.yaml))
			require.NoError(t, err)

			err = Validate(def, testWorld, testStart)
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			var ve ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.code, ve.Code)
		})
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	a, _ := ParseDef([]byte(validYAML))
	b, _ := ParseDef([]byte(validYAML))
	_, err := NewCatalog([]*Def{a, b}, testWorld, testStart)
	assert.Error(t, err)

	b.ID = "other"
	_, err = NewCatalog([]*Def{a, b}, testWorld, testStart)
	assert.Error(t, err, "shared number must be rejected")

	b.Number = 2
	c, err := NewCatalog([]*Def{b, a}, testWorld, testStart)
	require.NoError(t, err)
	assert.Equal(t, "sample", c.First(), "catalog orders by number")

	_, err = NewCatalog(nil, testWorld, testStart)
	assert.Error(t, err)
}

func TestLoadCatalogFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), []byte(validYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("id: [oops"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	c, err := LoadCatalog(dir, testWorld, testStart, nil)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	def, _ := c.At(0)
	assert.Equal(t, "one.yaml", def.Source)
}

func TestLoadCatalogEmptyDir(t *testing.T) {
	_, err := LoadCatalog(t.TempDir(), testWorld, testStart, nil)
	assert.Error(t, err)
}

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "new.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for level file")
	}

	require.NoError(t, w.Close())
	for range w.Events {
		// drain anything buffered; the loop ends only once Events is closed
	}
}
