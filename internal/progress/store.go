package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ErrNoSave is returned by Load when no saved state exists yet.
var ErrNoSave = errors.New("progress: no saved state")

// Store persists a WorldState. Implementations must be safe to call from
// the simulation thread; they may do synchronous I/O.
type Store interface {
	Load() (*WorldState, error)
	Save(w *WorldState) error
}

// FileStore keeps the world state in a single file.
// The format is JSON for a .json extension and YAML otherwise.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) isJSON() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".json")
}

// Load reads and decodes the file. A missing file yields ErrNoSave.
func (s *FileStore) Load() (*WorldState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("progress: read %s: %w", s.path, err)
	}

	w := New()
	if s.isJSON() {
		err = json.Unmarshal(data, w)
	} else {
		err = yaml.Unmarshal(data, w)
	}
	if err != nil {
		return nil, fmt.Errorf("progress: decode %s: %w", s.path, err)
	}
	w.Normalize()
	return w, nil
}

// Save encodes w and replaces the file atomically.
func (s *FileStore) Save(w *WorldState) error {
	var (
		data []byte
		err  error
	)
	if s.isJSON() {
		data, err = json.MarshalIndent(w, "", "  ")
	} else {
		data, err = yaml.Marshal(w)
	}
	if err != nil {
		return fmt.Errorf("progress: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progress: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".world-*")
	if err != nil {
		return fmt.Errorf("progress: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("progress: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("progress: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("progress: replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps the world state in memory. Used when saving is disabled
// and in tests.
type MemoryStore struct {
	mu    sync.Mutex
	state *WorldState
	saves int
	// Err, if set, is returned by Save.
	Err error
}

// Load returns a copy of the last saved state.
func (m *MemoryStore) Load() (*WorldState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, ErrNoSave
	}
	return m.state.Clone(), nil
}

// Save stores a copy of w.
func (m *MemoryStore) Save(w *WorldState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.state = w.Clone()
	m.saves++
	return nil
}

// Saves returns how many successful saves happened.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// LoadOrDefault loads from s and falls back to an empty state on any error.
// Missing saves are silent; corrupt or unreadable ones are logged.
func LoadOrDefault(s Store, logger *log.Logger) *WorldState {
	w, err := s.Load()
	if err == nil {
		return w
	}
	if !errors.Is(err, ErrNoSave) && logger != nil {
		logger.Warn("could not load saved progress, starting fresh", "err", err)
	}
	return New()
}
