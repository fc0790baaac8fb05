// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ten-second-life/internal/game"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID           int64
	RunID        string
	Outcome      string
	LevelReached int
	LevelID      string
	Attempts     int
	LivesLost    int
	Seconds      float64
	CreatedAt    time.Time
}

// LevelClear is one cleared level within a run.
type LevelClear struct {
	ID          int64
	RunID       string
	LevelID     string
	LevelNumber int
	TimeLeft    float64
	Attempts    int
	CreatedAt   time.Time
}

// BestClear aggregates the clears of one level.
type BestClear struct {
	LevelID      string
	LevelNumber  int
	BestTimeLeft float64
	FewestTries  int
	Clears       int
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs         int
	Victories    int
	GameOvers    int
	Abandoned    int
	BestLevel    int
	TotalSeconds float64
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			outcome TEXT NOT NULL,
			level_reached INTEGER NOT NULL DEFAULT 0,
			level_id TEXT NOT NULL DEFAULT '',
			attempts INTEGER NOT NULL DEFAULT 0,
			lives_lost INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS level_clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_number INTEGER NOT NULL,
			time_left REAL NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_clears_level ON level_clears(level_id, time_left DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == "" {
		return 0, errors.New("storage: run id is required")
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, outcome, level_reached, level_id, attempts, lives_lost, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Outcome, r.LevelReached, r.LevelID, r.Attempts, r.LivesLost, r.Seconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveLevelClear records one cleared level. Returns the ID of the inserted record.
func (s *Store) SaveLevelClear(c LevelClear) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO level_clears (run_id, level_id, level_number, time_left, attempts)
		 VALUES (?, ?, ?, ?, ?)`,
		c.RunID, c.LevelID, c.LevelNumber, c.TimeLeft, c.Attempts,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, run_id, outcome, level_reached, level_id, attempts, lives_lost, duration_secs, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// BestRuns retrieves the best runs: victories first, then the furthest
// level reached, then the fewest attempts and the shortest time.
func (s *Store) BestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 ORDER BY (outcome = 'victory') DESC, level_reached DESC, attempts ASC, duration_secs ASC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Outcome, &r.LevelReached, &r.LevelID,
			&r.Attempts, &r.LivesLost, &r.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearsForRun retrieves the level clears of one run in play order.
func (s *Store) ClearsForRun(runID string) ([]LevelClear, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, level_number, time_left, attempts, created_at
		 FROM level_clears
		 WHERE run_id = ?
		 ORDER BY level_number, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level clears: %w", err)
	}
	defer rows.Close()

	var clears []LevelClear
	for rows.Next() {
		var c LevelClear
		var createdAt any
		if err := rows.Scan(&c.ID, &c.RunID, &c.LevelID, &c.LevelNumber, &c.TimeLeft, &c.Attempts, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		clears = append(clears, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return clears, nil
}

// BestClears returns per-level records ordered by level number.
func (s *Store) BestClears() ([]BestClear, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MAX(level_number), MAX(time_left), MIN(attempts), COUNT(*)
		 FROM level_clears
		 GROUP BY level_id
		 ORDER BY MAX(level_number), level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best clears: %w", err)
	}
	defer rows.Close()

	var best []BestClear
	for rows.Next() {
		var b BestClear
		if err := rows.Scan(&b.LevelID, &b.LevelNumber, &b.BestTimeLeft, &b.FewestTries, &b.Clears); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best = append(best, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'victory'), 0),
		        COALESCE(SUM(outcome = 'game_over'), 0),
		        COALESCE(SUM(outcome = 'abandoned'), 0),
		        COALESCE(MAX(level_reached), 0),
		        COALESCE(SUM(duration_secs), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Victories, &stats.GameOvers, &stats.Abandoned, &stats.BestLevel, &stats.TotalSeconds)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearHistory deletes all runs and level clears.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM level_clears; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// RecordRun implements game.History.
func (s *Store) RecordRun(r game.RunRecord) error {
	_, err := s.SaveRun(Run{
		RunID:        r.RunID,
		Outcome:      string(r.Outcome),
		LevelReached: r.LevelReached,
		LevelID:      r.LevelID,
		Attempts:     r.Attempts,
		LivesLost:    r.LivesLost,
		Seconds:      r.Seconds,
	})
	return err
}

// RecordLevelClear implements game.History.
func (s *Store) RecordLevelClear(c game.ClearRecord) error {
	_, err := s.SaveLevelClear(LevelClear{
		RunID:       c.RunID,
		LevelID:     c.LevelID,
		LevelNumber: c.LevelNumber,
		TimeLeft:    c.TimeLeft,
		Attempts:    c.Attempts,
	})
	return err
}

// Ensure Store implements game.History
var _ game.History = (*Store)(nil)

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
