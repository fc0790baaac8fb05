// Package game is the top-level state machine of Ten Second Life.
// It owns the current level, the life timer, the lives counter and the
// world state, and turns input frames into transitions between them.
package game

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ten-second-life/internal/config"
	"github.com/vovakirdan/ten-second-life/internal/core"
	"github.com/vovakirdan/ten-second-life/internal/entity"
	"github.com/vovakirdan/ten-second-life/internal/levels"
	"github.com/vovakirdan/ten-second-life/internal/life"
	"github.com/vovakirdan/ten-second-life/internal/progress"
)

// Options configures a new Game.
type Options struct {
	Config  config.GameConfig
	Catalog *levels.Catalog
	// Store persists the world state. Nil keeps it in memory only.
	Store progress.Store
	// History records finished runs. May be nil.
	History History
	Logger  *log.Logger
	Seed    int64
}

// run tracks the run in progress. A zero id means no run is active.
type run struct {
	id            string
	attempts      int
	livesLost     int
	seconds       float64
	levelAttempts int
}

// Game is the single owner of all mutable game state. It is not safe for
// concurrent use; the platform drives it from one goroutine.
type Game struct {
	cfg     config.GameConfig
	bounds  core.Rect
	catalog *levels.Catalog
	pending *levels.Catalog
	store   progress.Store
	history History
	logger  *log.Logger
	rng     *rand.Rand

	state  State
	world  *progress.WorldState
	level  *levels.Level
	player *entity.Player
	timer  *life.Timer
	bonus  float64 // seconds added to the current life
	lives  int

	lastWhole   int // last whole second announced by the low-time tick
	message     string
	messageLeft float64
	banner      string
	bannerLeft  float64
	quote       string

	run     run
	lastRun RunRecord
	sounds  []core.SoundEvent
	quit    bool
}

// New creates a game in the MENU state with the saved world state loaded.
// A missing or unreadable save starts from an empty world.
func New(opts Options) (*Game, error) {
	if opts.Catalog == nil || opts.Catalog.Len() == 0 {
		return nil, errors.New("game: no levels")
	}
	cfg := opts.Config
	if cfg.World.Width <= 0 {
		cfg = config.DefaultGameConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := opts.Store
	if store == nil {
		store = &progress.MemoryStore{}
	}

	start := cfg.PlayerStart()
	g := &Game{
		cfg:     cfg,
		bounds:  cfg.Bounds(),
		catalog: opts.Catalog,
		store:   store,
		history: opts.History,
		logger:  logger,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		state:   StateMenu,
		world:   progress.LoadOrDefault(store, logger),
		player:  entity.NewPlayer(start.Pos(), start.W, start.H, cfg.Player.Speed),
		timer:   life.NewTimer(cfg.Life.Duration),
		lives:   cfg.Life.Lives,
	}
	return g, nil
}

// Step advances the game by dt seconds with the given input.
func (g *Game) Step(dt float64, in core.InputFrame) StepResult {
	g.sounds = nil
	if in.Has(core.ActionQuit) {
		g.Quit()
		return g.result()
	}

	g.tickMessages(dt)
	switch g.state {
	case StateMenu:
		g.stepMenu(in)
	case StatePlaying:
		g.stepPlaying(dt, in)
	case StateDeath:
		g.stepDeath(in)
	case StateLevelComplete:
		g.stepLevelComplete(in)
	case StateVictory:
		g.stepVictory(in)
	case StateGameOver:
		g.stepGameOver(in)
	}
	return g.result()
}

func (g *Game) result() StepResult {
	return StepResult{State: g.state, Sounds: g.sounds, Quit: g.quit}
}

// Quit ends the program: an active run is recorded as abandoned and the
// world state is saved. Further calls do nothing.
func (g *Game) Quit() {
	if g.quit {
		return
	}
	g.stopHeartbeat()
	if g.state == StatePlaying {
		g.run.seconds += g.timer.Elapsed(g.bonus)
	}
	g.finishRun(OutcomeAbandoned)
	g.checkpoint("quit")
	g.quit = true
}

// SetCatalog installs a reloaded level catalog. It takes effect at the next
// level load, or immediately while in the menu.
func (g *Game) SetCatalog(c *levels.Catalog) {
	if c == nil || c.Len() == 0 {
		return
	}
	g.pending = c
	if g.state == StateMenu {
		g.applyPendingCatalog()
	}
}

func (g *Game) applyPendingCatalog() {
	if g.pending == nil {
		return
	}
	g.catalog = g.pending
	g.pending = nil
	g.logger.Info("level catalog reloaded", "levels", g.catalog.Len())
}

func (g *Game) stepMenu(in core.InputFrame) {
	switch {
	case in.Has(core.ActionConfirm):
		g.start()
	case in.Has(core.ActionMenu):
		g.Quit()
	}
}

func (g *Game) stepPlaying(dt float64, in core.InputFrame) {
	if in.Has(core.ActionMenu) {
		g.abandon()
		return
	}
	if in.Has(core.ActionReset) {
		g.logger.Debug("attempt forfeited", "level", g.level.ID())
		g.loseLife()
		return
	}

	if in.Has(core.ActionInteract) {
		if msg, ok := g.level.Interact(g.player); ok {
			g.say(msg)
		}
	}
	g.player.Move(in.Direction(), dt, g.bounds)

	// The objective is checked before the timer so that a win on the
	// final step counts.
	completed := g.level.Step(dt, g.player)
	g.applyEvents(g.level.Events())
	if completed {
		g.completeLevel()
		return
	}

	if g.timer.Tick(dt) {
		g.logger.Debug("life expired", "level", g.level.ID())
		g.loseLife()
		return
	}
	g.warnLowTime()
}

func (g *Game) stepDeath(in core.InputFrame) {
	switch {
	case in.Has(core.ActionMenu):
		g.abandon()
	case in.Has(core.ActionConfirm), in.Has(core.ActionReset):
		g.beginAttempt()
	}
}

func (g *Game) stepLevelComplete(in core.InputFrame) {
	switch {
	case in.Has(core.ActionMenu):
		g.abandon()
	case in.Has(core.ActionConfirm):
		g.advance()
	}
}

func (g *Game) stepVictory(in core.InputFrame) {
	switch {
	case in.Has(core.ActionMenu):
		g.fullReset()
	case in.Has(core.ActionConfirm):
		g.fullReset()
		g.start()
	}
}

func (g *Game) stepGameOver(in core.InputFrame) {
	if in.Has(core.ActionConfirm) || in.Has(core.ActionMenu) {
		g.fullReset()
	}
}

// start begins a run at the saved level, or the first level.
func (g *Game) start() {
	g.applyPendingCatalog()
	id := g.catalog.First()
	if cur := g.world.CurrentLevel; cur != "" {
		if _, ok := g.catalog.Index(cur); ok {
			id = cur
		}
	}
	g.run = run{id: uuid.NewString()}
	g.lives = g.cfg.Life.Lives
	g.logger.Debug("run started", "run", g.run.id, "level", id)
	g.loadLevel(id)
}

// loadLevel builds id from the catalog and starts its first attempt.
func (g *Game) loadLevel(id string) {
	i, ok := g.catalog.Index(id)
	def, _ := g.catalog.At(i)
	if !ok {
		panic(fmt.Sprintf("game: level %q is not in the catalog", id))
	}
	lvl, err := levels.New(def, g.world)
	if err != nil {
		// Catalog entries are validated when the catalog is built.
		panic(fmt.Sprintf("game: level %q: %v", id, err))
	}

	g.level = lvl
	g.world.CurrentLevel = id
	g.run.levelAttempts = 0
	g.banner = fmt.Sprintf("Level %d: %s", def.Number, def.Title)
	g.bannerLeft = g.cfg.Messages.BannerSeconds
	g.beginAttempt()
}

// beginAttempt resets the level, the player and the timer. Lives and the
// world state are untouched.
func (g *Game) beginAttempt() {
	g.level.Reset(g.world)
	g.player.ResetPosition()
	g.timer.Reset()
	g.bonus = 0
	g.lastWhole = 0
	g.message, g.messageLeft = "", 0
	g.quote = ""
	g.run.attempts++
	g.run.levelAttempts++
	g.state = StatePlaying
	g.sounds = append(g.sounds, core.SoundEvent{Sound: core.SoundHeartbeat, Playback: core.LoopStart})
	g.logger.Debug("attempt started", "level", g.level.ID(), "lives", g.lives)
}

func (g *Game) applyEvents(evs []levels.Event) {
	for _, ev := range evs {
		switch ev.Kind {
		case levels.EventItemCollected:
			g.world.ItemsCollected.Add(ev.EntityID)
			g.play(ev.Item.Spec().Sound)
		case levels.EventTimeBonus:
			bonus := g.cfg.Life.TimeBonus
			if bonus > 0 {
				g.timer.Extend(bonus)
				g.bonus += bonus
				g.say(fmt.Sprintf("+%.0f seconds!", bonus))
			}
		case levels.EventDoorOpened:
			g.world.DoorsOpened.Add(ev.EntityID)
			if !ev.Restored {
				g.play(core.SoundDoor)
			}
		case levels.EventAreaUnlocked:
			g.world.AreasUnlocked.Add(ev.Area)
		case levels.EventSwitchActivated:
			g.world.SwitchesActivated.Add(ev.EntityID)
			g.play(core.SoundSwitch)
		case levels.EventNPCTalked:
			g.world.NPCsTalkedTo.Add(ev.EntityID)
			g.play(core.SoundTalk)
		case levels.EventRevealed:
			g.play(core.SoundSwitch)
		case levels.EventLocked:
			g.play(core.SoundLocked)
		}
	}
}

// endAttempt books the finished life into the world state and the run.
func (g *Game) endAttempt() {
	g.stopHeartbeat()
	elapsed := g.timer.Elapsed(g.bonus)
	g.world.RecordAttempt(elapsed)
	g.run.seconds += elapsed
}

func (g *Game) completeLevel() {
	g.endAttempt()
	id := g.level.ID()
	g.world.CompleteLevel(id)
	g.world.CurrentLevel = ""
	if next, ok := g.nextLevel(); ok {
		g.world.CurrentLevel = next
	}

	rec := ClearRecord{
		RunID:       g.run.id,
		LevelID:     id,
		LevelNumber: g.level.Number(),
		TimeLeft:    g.timer.Remaining(),
		Attempts:    g.run.levelAttempts,
	}
	if g.history != nil {
		if err := g.history.RecordLevelClear(rec); err != nil {
			g.logger.Warn("recording level clear failed", "level", id, "err", err)
		}
	}

	g.state = StateLevelComplete
	g.message, g.messageLeft = "", 0
	g.play(core.SoundLevelComplete)
	g.logger.Debug("level complete", "level", id, "time_left", rec.TimeLeft)
	g.checkpoint("level clear")
}

// nextLevel returns the level after the current one. If the catalog was
// reloaded and no longer holds the current level, the first level with a
// higher number follows.
func (g *Game) nextLevel() (string, bool) {
	if next, ok := g.catalog.Next(g.level.ID()); ok {
		return next, true
	}
	if _, ok := g.catalog.Index(g.level.ID()); ok {
		return "", false
	}
	for _, info := range g.catalog.List() {
		if info.Number > g.level.Number() {
			return info.ID, true
		}
	}
	return "", false
}

func (g *Game) advance() {
	g.applyPendingCatalog()
	next, ok := g.nextLevel()
	if !ok {
		g.win()
		return
	}
	g.loadLevel(next)
}

func (g *Game) win() {
	g.state = StateVictory
	g.play(core.SoundVictory)
	g.finishRun(OutcomeVictory)
	g.world.CurrentLevel = ""
	g.checkpoint("victory")
}

// loseLife ends the attempt in failure and costs exactly one life.
func (g *Game) loseLife() {
	g.endAttempt()
	g.lives--
	g.run.livesLost++
	if g.lives > 0 {
		g.state = StateDeath
		g.quote = quotes[g.rng.Intn(len(quotes))]
		g.play(core.SoundDeath)
	} else {
		g.lives = 0
		g.state = StateGameOver
		g.play(core.SoundGameOver)
		g.finishRun(OutcomeGameOver)
		// The save is wiped now so quitting from this screen cannot resume.
		g.world = progress.New()
	}
	g.message, g.messageLeft = "", 0
	g.checkpoint("attempt end")
}

// abandon leaves the run for the menu with a full reset.
func (g *Game) abandon() {
	g.stopHeartbeat()
	if g.state == StatePlaying {
		g.run.seconds += g.timer.Elapsed(g.bonus)
	}
	g.finishRun(OutcomeAbandoned)
	g.fullReset()
}

// fullReset returns to the menu with full lives and an empty world state.
func (g *Game) fullReset() {
	g.stopHeartbeat()
	g.run = run{}
	g.world = progress.New()
	g.lives = g.cfg.Life.Lives
	g.level = nil
	g.player.ResetPosition()
	g.timer.Reset()
	g.bonus = 0
	g.message, g.messageLeft = "", 0
	g.banner, g.bannerLeft = "", 0
	g.quote = ""
	g.state = StateMenu
	g.applyPendingCatalog()
	g.logger.Debug("full reset")
	g.checkpoint("full reset")
}

// finishRun reports the active run to the history, if any.
func (g *Game) finishRun(outcome Outcome) {
	if g.run.id == "" {
		return
	}
	rec := RunRecord{
		RunID:     g.run.id,
		Outcome:   outcome,
		Attempts:  g.run.attempts,
		LivesLost: g.run.livesLost,
		Seconds:   g.run.seconds,
	}
	if g.level != nil {
		rec.LevelID = g.level.ID()
		rec.LevelReached = g.level.Number()
	}
	g.lastRun = rec
	g.run = run{}
	g.logger.Info("run finished", "run", rec.RunID, "outcome", rec.Outcome, "level", rec.LevelReached)

	if g.history == nil {
		return
	}
	if err := g.history.RecordRun(rec); err != nil {
		g.logger.Warn("recording run failed", "run", rec.RunID, "err", err)
	}
}

// checkpoint saves the world state. Failures are logged and play goes on.
func (g *Game) checkpoint(reason string) {
	if err := g.store.Save(g.world); err != nil {
		g.logger.Warn("saving progress failed", "checkpoint", reason, "err", err)
		return
	}
	g.logger.Debug("progress saved", "checkpoint", reason)
}

func (g *Game) warnLowTime() {
	rem := g.timer.Remaining()
	if rem > g.cfg.Life.LowTimeWarning {
		g.lastWhole = 0
		return
	}
	if whole := int(math.Ceil(rem)); whole != g.lastWhole {
		g.lastWhole = whole
		g.play(core.SoundTick)
	}
}

func (g *Game) stopHeartbeat() {
	g.sounds = append(g.sounds, core.SoundEvent{Sound: core.SoundHeartbeat, Playback: core.LoopStop})
}

func (g *Game) play(s core.Sound) {
	if s != core.SoundNone {
		g.sounds = append(g.sounds, core.Play(s))
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageLeft = g.cfg.Messages.InteractSeconds
}

func (g *Game) tickMessages(dt float64) {
	if g.messageLeft > 0 {
		g.messageLeft -= dt
		if g.messageLeft <= 0 {
			g.message, g.messageLeft = "", 0
		}
	}
	if g.bannerLeft > 0 {
		g.bannerLeft -= dt
		if g.bannerLeft <= 0 {
			g.banner, g.bannerLeft = "", 0
		}
	}
}
