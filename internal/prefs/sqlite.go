package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLite is a KV stored in a single-table SQLite database.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger

	// Values whose write failed; they shadow the database for this session.
	mu      sync.RWMutex
	pending map[string]bool
}

// OpenSQLite opens (creating if needed) the database at path. An empty path
// uses the default location.
func OpenSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	resolved, err := resolvePath(path, defaultSQLitePath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create prefs schema: %w", err)
	}

	return &SQLite{db: db, logger: logger, pending: make(map[string]bool)}, nil
}

// Get implements KV.
func (s *SQLite) Get(key string) (bool, bool) {
	s.mu.RLock()
	v, ok := s.pending[key]
	s.mu.RUnlock()
	if ok {
		return v, true
	}

	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("read preference failed", zap.String("key", key), zap.Error(err))
		}
		return false, false
	}
	return parseValue(raw)
}

// Set implements KV.
func (s *SQLite) Set(key string, value bool) {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, strconv.FormatBool(value),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.pending[key] = value
		s.logger.Warn("persist preference failed", zap.String("key", key), zap.Error(err))
		return
	}
	delete(s.pending, key)
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
