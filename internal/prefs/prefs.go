// Package prefs handles Marquee user preference persistence.
// Preferences are stored in ~/.config/marquee/prefs.toml by default, or in a
// SQLite database when the sqlite backend is configured.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// KV is a durable boolean key-value store. Writes never fail from the
// caller's point of view: a backend that cannot persist keeps the value in
// memory for the rest of the session.
type KV interface {
	Get(key string) (value bool, ok bool)
	Set(key string, value bool)
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	defaultPrefsPath  = "~/.config/marquee/prefs.toml"
	defaultSQLitePath = "~/.local/share/marquee/prefs.db"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown prefs backend")

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// DefaultSQLitePath returns the default preferences database path.
func DefaultSQLitePath() string {
	return defaultSQLitePath
}

// Options select and locate a backend.
type Options struct {
	Backend    string // file, sqlite or memory; empty means file
	Path       string // TOML file path for the file backend
	SQLitePath string // database path for the sqlite backend
}

// Open returns the configured backend. A sqlite database that cannot be
// opened degrades to an in-memory store rather than failing startup.
func Open(opts Options, logger *zap.Logger) (KV, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return OpenFile(opts.Path, logger), nil
	case BackendSQLite:
		kv, err := OpenSQLite(opts.SQLitePath, logger)
		if err != nil {
			logger.Warn("sqlite prefs unavailable, keeping preferences in memory", zap.Error(err))
			return NewMemory(), nil
		}
		return kv, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// parseValue interprets a stored value. Native booleans and their string
// serialisations are accepted; anything else reads as absent.
func parseValue(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
