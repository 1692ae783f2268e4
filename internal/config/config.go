package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/marquee/internal/prefs"
)

// Config holds Marquee's runtime settings.
type Config struct {
	PrefsPath    string
	PrefsBackend string
	SQLitePath   string
	PollInterval time.Duration
	LogDir       string
	LogLevel     string
	FollowSystem bool
}

const (
	defaultConfigPath   = "~/.config/marquee/config.toml"
	defaultLogDir       = "~/.local/share/marquee/logs"
	defaultLogLevel     = "info"
	defaultPollInterval = 2 * time.Second
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PrefsPath:    mustExpand(prefs.DefaultPath()),
		PrefsBackend: prefs.BackendFile,
		SQLitePath:   mustExpand(prefs.DefaultSQLitePath()),
		PollInterval: defaultPollInterval,
		LogDir:       mustExpand(defaultLogDir),
		LogLevel:     defaultLogLevel,
		FollowSystem: true,
	}
}

// Load locates and parses the Marquee config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PrefsPath    string `toml:"prefs_path"`
		PrefsBackend string `toml:"prefs_backend"`
		SQLitePath   string `toml:"sqlite_path"`
		PollInterval string `toml:"poll_interval"`
		LogDir       string `toml:"log_dir"`
		LogLevel     string `toml:"log_level"`
		FollowSystem *bool  `toml:"follow_system"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		cfg.PrefsPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.SQLitePath); v != "" {
		cfg.SQLitePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}

	switch v := strings.ToLower(strings.TrimSpace(raw.PrefsBackend)); v {
	case "":
	case prefs.BackendFile, prefs.BackendSQLite, prefs.BackendMemory:
		cfg.PrefsBackend = v
	default:
		return Config{}, fmt.Errorf("parse config: prefs_backend %q: %w", raw.PrefsBackend, prefs.ErrUnknownBackend)
	}

	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: poll_interval: %w", err)
		}
		if d > 0 {
			cfg.PollInterval = d
		}
	}

	if raw.FollowSystem != nil {
		cfg.FollowSystem = *raw.FollowSystem
	}

	return cfg, nil
}

// LogPath returns the path to the Marquee log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/marquee.log")
	}
	return filepath.Join(c.LogDir, "marquee.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
