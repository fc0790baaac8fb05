package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/ten-second-life/internal/config"
	"github.com/vovakirdan/ten-second-life/internal/core"
	"github.com/vovakirdan/ten-second-life/internal/levels"
	"github.com/vovakirdan/ten-second-life/internal/progress"
	"github.com/vovakirdan/ten-second-life/internal/storage"
)

// session holds everything a command needs, built from the global flags.
type session struct {
	cfg     config.GameConfig
	catalog *levels.Catalog
	save    *progress.FileStore
	logger  *log.Logger
	logFile io.Closer
}

// newSession loads config and levels and opens the log file.
func newSession() (_ *session, err error) {
	logger, logFile := openLog()
	defer func() {
		if err != nil && logFile != nil {
			logFile.Close()
		}
	}()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagSavePath != "" {
		cfg.Save.Path = flagSavePath
	}
	if flagDBPath != "" {
		cfg.Save.DB = flagDBPath
	}

	catalog, err := levels.LoadCatalog(flagLevelsDir, cfg.Bounds(), cfg.PlayerStart(), logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("session ready",
		"levels", catalog.Len(), "difficulty", preset, "save", cfg.Save.Path)

	return &session{
		cfg:     cfg,
		catalog: catalog,
		save:    progress.NewFileStore(config.ExpandHome(cfg.Save.Path)),
		logger:  logger,
		logFile: logFile,
	}, nil
}

// Close releases the log file.
func (s *session) Close() {
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// openHistory opens the run history. Failure is logged and play goes on
// without it.
func (s *session) openHistory() *storage.Store {
	store, err := storage.Open(s.cfg.Save.DB)
	if err != nil {
		s.logger.Warn("run history unavailable", "db", s.cfg.Save.DB, "err", err)
		return nil
	}
	return store
}

// resumeLabel names the level a new run would start at, or "" for the first.
func (s *session) resumeLabel() string {
	w := progress.LoadOrDefault(s.save, s.logger)
	i, ok := s.catalog.Index(w.CurrentLevel)
	if !ok {
		return ""
	}
	def, _ := s.catalog.At(i)
	return fmt.Sprintf("Level %d: %s", def.Number, def.Title)
}

// runtimeConfig builds the tick and screen settings from flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// openLog is replaced in tests.
var openLog = openLogger

// openLogger writes to the log file, since the terminal belongs to the TUI.
func openLogger() (*log.Logger, io.Closer) {
	path := flagLogPath
	if path == "" {
		path = filepath.Join(config.Dir(), "tensec.log")
	}
	path = config.ExpandHome(path)

	var w io.Writer = io.Discard
	var closer io.Closer
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tensec",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer
}
