package game

import "github.com/vovakirdan/ten-second-life/internal/core"

// State is the top-level mode of the game.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateDeath
	StateLevelComplete
	StateVictory
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateDeath:
		return "death"
	case StateLevelComplete:
		return "level_complete"
	case StateVictory:
		return "victory"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeVictory   Outcome = "victory"
	OutcomeGameOver  Outcome = "game_over"
	OutcomeAbandoned Outcome = "abandoned"
)

// RunRecord summarizes one run from MENU start to its end.
type RunRecord struct {
	RunID        string
	Outcome      Outcome
	LevelReached int // number of the level the run ended on
	LevelID      string
	Attempts     int // lives started
	LivesLost    int
	Seconds      float64 // simulated time spent in attempts
}

// ClearRecord describes one level clear within a run.
type ClearRecord struct {
	RunID       string
	LevelID     string
	LevelNumber int
	TimeLeft    float64
	Attempts    int // attempts spent on this level, the clearing one included
}

// History receives finished runs and level clears. Failures are logged
// and never interrupt play.
type History interface {
	RecordRun(RunRecord) error
	RecordLevelClear(ClearRecord) error
}

// StepResult is what one simulation step reports to the platform.
type StepResult struct {
	State  State
	Sounds []core.SoundEvent
	Quit   bool
}

// Snapshot captures the game state for tests and debugging.
type Snapshot struct {
	State     State
	LevelID   string
	Lives     int
	Remaining float64
	PlayerX   float64
	PlayerY   float64
	Inventory string
	Message   string
	Attempts  int
}
