// Package progress holds the cumulative facts that survive across attempts
// and levels, and persists them between runs.
package progress

import "slices"

// Set is an insertion-ordered set of identifiers.
// It serializes as a plain list.
type Set []string

// Add inserts id if missing and reports whether it was added.
func (s *Set) Add(id string) bool {
	if id == "" || s.Has(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	return slices.Contains(s, id)
}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// dedup removes repeated and empty entries, keeping first occurrence order.
func (s Set) dedup() Set {
	out := make(Set, 0, len(s))
	for _, id := range s {
		out.Add(id)
	}
	return out
}

// WorldState is the record of facts that persists across attempts and levels.
// Set membership only grows for the lifetime of a saved game.
type WorldState struct {
	DoorsOpened       Set `yaml:"doors_opened" json:"doors_opened"`
	ItemsCollected    Set `yaml:"items_collected" json:"items_collected"`
	NPCsTalkedTo      Set `yaml:"npcs_talked_to" json:"npcs_talked_to"`
	SwitchesActivated Set `yaml:"switches_activated" json:"switches_activated"`
	AreasUnlocked     Set `yaml:"areas_unlocked" json:"areas_unlocked"`
	LevelsCompleted   Set `yaml:"levels_completed" json:"levels_completed"`

	CurrentLevel    string  `yaml:"current_level" json:"current_level"`
	LifeCount       int     `yaml:"life_count" json:"life_count"`
	TotalTimePlayed float64 `yaml:"total_time_played" json:"total_time_played"`
}

// New returns an empty world state.
func New() *WorldState {
	return &WorldState{
		DoorsOpened:       Set{},
		ItemsCollected:    Set{},
		NPCsTalkedTo:      Set{},
		SwitchesActivated: Set{},
		AreasUnlocked:     Set{},
		LevelsCompleted:   Set{},
	}
}

// Normalize fills nil sets, drops duplicates and clamps negative counters.
// Loaded files go through it so hand-edited saves cannot break invariants.
func (w *WorldState) Normalize() {
	w.DoorsOpened = w.DoorsOpened.dedup()
	w.ItemsCollected = w.ItemsCollected.dedup()
	w.NPCsTalkedTo = w.NPCsTalkedTo.dedup()
	w.SwitchesActivated = w.SwitchesActivated.dedup()
	w.AreasUnlocked = w.AreasUnlocked.dedup()
	w.LevelsCompleted = w.LevelsCompleted.dedup()
	if w.LifeCount < 0 {
		w.LifeCount = 0
	}
	if w.TotalTimePlayed < 0 {
		w.TotalTimePlayed = 0
	}
}

// Clone returns a deep copy.
func (w *WorldState) Clone() *WorldState {
	c := *w
	c.DoorsOpened = slices.Clone(w.DoorsOpened)
	c.ItemsCollected = slices.Clone(w.ItemsCollected)
	c.NPCsTalkedTo = slices.Clone(w.NPCsTalkedTo)
	c.SwitchesActivated = slices.Clone(w.SwitchesActivated)
	c.AreasUnlocked = slices.Clone(w.AreasUnlocked)
	c.LevelsCompleted = slices.Clone(w.LevelsCompleted)
	return &c
}

// Facts is the read-only view a level consults when building its layout.
type Facts interface {
	DoorOpen(id string) bool
	SwitchActive(id string) bool
}

// DoorOpen reports whether a persisted door has been opened.
func (w *WorldState) DoorOpen(id string) bool { return w.DoorsOpened.Has(id) }

// SwitchActive reports whether a persisted switch has been activated.
func (w *WorldState) SwitchActive(id string) bool { return w.SwitchesActivated.Has(id) }

// RecordAttempt counts one finished life of the given length.
func (w *WorldState) RecordAttempt(seconds float64) {
	w.LifeCount++
	if seconds > 0 {
		w.TotalTimePlayed += seconds
	}
}

// CompleteLevel marks levelID as cleared.
func (w *WorldState) CompleteLevel(levelID string) {
	w.LevelsCompleted.Add(levelID)
}
