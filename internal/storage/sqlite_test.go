package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/ten-second-life/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{RunID: "a", Outcome: "victory", LevelReached: 6}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Outcome: "victory"}); err == nil {
		t.Error("Expected error for run without id")
	}
}

func TestSaveRunRejectsDuplicateID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{RunID: "same", Outcome: "abandoned"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{RunID: "same", Outcome: "victory"}); err == nil {
		t.Error("Expected error for duplicate run id")
	}
}

func TestBestRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{RunID: "slow-win", Outcome: "victory", LevelReached: 6, Attempts: 5, Seconds: 50},
		{RunID: "far-loss", Outcome: "game_over", LevelReached: 5, Attempts: 3, Seconds: 30},
		{RunID: "fast-win", Outcome: "victory", LevelReached: 6, Attempts: 5, Seconds: 40},
		{RunID: "lean-win", Outcome: "victory", LevelReached: 6, Attempts: 4, Seconds: 60},
		{RunID: "quit", Outcome: "abandoned", LevelReached: 1, Attempts: 1, Seconds: 2},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.RunID, err)
		}
	}

	best, err := store.BestRuns(10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}

	expected := []string{"lean-win", "fast-win", "slow-win", "far-loss", "quit"}
	if len(best) != len(expected) {
		t.Fatalf("Expected %d runs, got %d", len(expected), len(best))
	}
	for i, id := range expected {
		if best[i].RunID != id {
			t.Errorf("BestRuns()[%d]: got %s, expected %s", i, best[i].RunID, id)
		}
	}

	top, err := store.BestRuns(2)
	if err != nil {
		t.Fatalf("BestRuns(2) failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Expected limit of 2, got %d", len(top))
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	for _, id := range []string{"first", "second", "third"} {
		if _, err := store.SaveRun(Run{RunID: id, Outcome: "abandoned"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	// Same-second timestamps fall back to insertion order.
	if runs[0].RunID != "third" {
		t.Errorf("Expected newest run first, got %s", runs[0].RunID)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestBestClears(t *testing.T) {
	store := openTestStore(t)

	clears := []LevelClear{
		{RunID: "r1", LevelID: "the_door", LevelNumber: 2, TimeLeft: 1.5, Attempts: 3},
		{RunID: "r1", LevelID: "first_steps", LevelNumber: 1, TimeLeft: 6.0, Attempts: 1},
		{RunID: "r2", LevelID: "the_door", LevelNumber: 2, TimeLeft: 4.25, Attempts: 2},
	}
	for _, c := range clears {
		if _, err := store.SaveLevelClear(c); err != nil {
			t.Fatalf("SaveLevelClear() failed: %v", err)
		}
	}

	best, err := store.BestClears()
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(best))
	}
	if best[0].LevelID != "first_steps" {
		t.Errorf("Expected level order by number, got %s first", best[0].LevelID)
	}
	door := best[1]
	if door.BestTimeLeft != 4.25 || door.FewestTries != 2 || door.Clears != 2 {
		t.Errorf("the_door aggregate: got %+v", door)
	}

	byRun, err := store.ClearsForRun("r1")
	if err != nil {
		t.Fatalf("ClearsForRun() failed: %v", err)
	}
	if len(byRun) != 2 || byRun[0].LevelNumber != 1 {
		t.Errorf("ClearsForRun(r1): got %+v", byRun)
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty db failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	for _, r := range []Run{
		{RunID: "a", Outcome: "victory", LevelReached: 6, Seconds: 42},
		{RunID: "b", Outcome: "game_over", LevelReached: 3, Seconds: 30},
		{RunID: "c", Outcome: "game_over", LevelReached: 2, Seconds: 25.5},
		{RunID: "d", Outcome: "abandoned", LevelReached: 1, Seconds: 2.5},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.Victories != 1 || stats.GameOvers != 2 || stats.Abandoned != 1 {
		t.Errorf("Outcome counts: got %+v", stats)
	}
	if stats.BestLevel != 6 {
		t.Errorf("BestLevel: got %d, expected 6", stats.BestLevel)
	}
	if stats.TotalSeconds != 100 {
		t.Errorf("TotalSeconds: got %f, expected 100", stats.TotalSeconds)
	}
}

func TestHistoryAdapter(t *testing.T) {
	store := openTestStore(t)
	var h game.History = store

	err := h.RecordRun(game.RunRecord{
		RunID:        "run-1",
		Outcome:      game.OutcomeGameOver,
		LevelReached: 2,
		LevelID:      "the_door",
		Attempts:     3,
		LivesLost:    3,
		Seconds:      29.5,
	})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if err := h.RecordLevelClear(game.ClearRecord{RunID: "run-1", LevelID: "first_steps", LevelNumber: 1, TimeLeft: 3, Attempts: 1}); err != nil {
		t.Fatalf("RecordLevelClear() failed: %v", err)
	}

	run, err := store.RunByID("run-1")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("Expected run to be found")
	}
	if run.Outcome != "game_over" || run.LevelID != "the_door" || run.Seconds != 29.5 {
		t.Errorf("Stored run mismatch: %+v", run)
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing): got %+v, %v", missing, err)
	}
}

func TestClearHistory(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{RunID: "a", Outcome: "victory"})
	store.SaveLevelClear(LevelClear{RunID: "a", LevelID: "x", LevelNumber: 1})

	if err := store.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	runs, _ := store.RecentRuns(10)
	best, _ := store.BestClears()
	if len(runs) != 0 || len(best) != 0 {
		t.Errorf("Expected empty history, got %d runs and %d clears", len(runs), len(best))
	}
}
