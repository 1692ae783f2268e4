package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// File is a KV backed by a flat TOML document:
//
//	isNightMode = true
//	userPreferredTheme = true
type File struct {
	path   string // resolved; empty when the path could not be resolved
	logger *zap.Logger

	mu     sync.RWMutex
	values map[string]bool
}

// OpenFile loads the TOML file at path, falling back to an empty store if it
// is missing or unreadable. An empty path uses the default location.
func OpenFile(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &File{logger: logger, values: make(map[string]bool)}

	resolved, err := resolvePath(path, defaultPrefsPath)
	if err != nil {
		logger.Warn("resolve prefs path failed, preferences will not persist", zap.Error(err))
		return f
	}
	f.path = resolved

	values, err := readFile(resolved)
	if err != nil {
		logger.Warn("read prefs failed, using defaults", zap.String("path", resolved), zap.Error(err))
		return f
	}
	f.values = values
	return f
}

// Path returns the resolved file path, or "" when persistence is disabled.
func (f *File) Path() string {
	return f.path
}

// Get implements KV.
func (f *File) Get(key string) (bool, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Set implements KV. The whole document is rewritten on every call; a failed
// write is logged and the value stays in memory.
func (f *File) Set(key string, value bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	if f.path == "" {
		return
	}
	if err := writeFile(f.path, f.values); err != nil {
		f.logger.Warn("persist preference failed",
			zap.String("path", f.path),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func readFile(path string) (map[string]bool, error) {
	values := make(map[string]bool)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return values, fmt.Errorf("open prefs: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return values, fmt.Errorf("read prefs: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return values, fmt.Errorf("parse prefs: %w", err)
	}
	for key, v := range raw {
		if b, ok := parseValue(v); ok {
			values[key] = b
		}
	}
	return values, nil
}

func writeFile(path string, values map[string]bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}
