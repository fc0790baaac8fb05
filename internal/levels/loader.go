package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader handles loading level definitions from a filesystem.
type Loader struct {
	fsys   fs.FS
	root   string
	logger *log.Logger
}

// NewLoader creates a loader for a directory on disk.
// Unparsable files are skipped and logged on logger, which may be nil.
func NewLoader(dir string, logger *log.Logger) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: ".", logger: logger}
}

// BuiltinLoader returns a loader over the levels compiled into the binary.
func BuiltinLoader() *Loader {
	return &Loader{fsys: builtinFS, root: "builtin"}
}

// LoadAll recursively scans and parses all level files.
// Returns definitions sorted by file path for deterministic ordering.
func (l *Loader) LoadAll() ([]*Def, error) {
	var paths []string
	err := fs.WalkDir(l.fsys, l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}
	sort.Strings(paths)

	defs := make([]*Def, 0, len(paths))
	for _, path := range paths {
		def, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			if l.logger != nil {
				l.logger.Warn("skipping level file", "path", path, "err", err)
			}
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadFile loads a single level file relative to the loader's filesystem.
func (l *Loader) LoadFile(path string) (*Def, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	def, err := ParseDef(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	def.Source = path
	return def, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
