package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/systheme"
)

type stubDetector struct {
	dark bool
	err  error
}

func (stubDetector) Name() string { return "stub" }

func (s stubDetector) PrefersDark() (bool, error) { return s.dark, s.err }

func writeConfig(t *testing.T, extra string) Options {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("prefs_path = %q\nlog_dir = %q\n%s", filepath.Join(dir, "prefs.toml"), filepath.Join(dir, "logs"), extra)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return Options{ConfigPath: path, Logger: zap.NewNop()}
}

func TestStatus_FollowsSystemWhenAvailable(t *testing.T) {
	opts := writeConfig(t, "")
	opts.Detector = stubDetector{dark: true}

	r, err := Status(opts)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if !r.SystemAvailable || !r.SystemDark || r.Detector != "stub" {
		t.Fatalf("report system = %+v, want available dark stub", r)
	}
	if !r.NightMode || r.UserPreferred {
		t.Fatalf("report = %+v, want night mode following system", r.Snapshot)
	}
}

func TestStatus_UnavailableSystemKeepsDefaults(t *testing.T) {
	opts := writeConfig(t, "")
	opts.Detector = stubDetector{err: systheme.ErrUnavailable}

	r, err := Status(opts)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if r.SystemAvailable {
		t.Fatalf("SystemAvailable = true, want false")
	}
	if r.NightMode || r.UserPreferred {
		t.Fatalf("report = %+v, want defaults", r.Snapshot)
	}
}

func TestStatus_FollowSystemDisabled(t *testing.T) {
	opts := writeConfig(t, "follow_system = false\n")
	opts.Detector = stubDetector{dark: true}

	r, err := Status(opts)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if r.SystemAvailable || r.NightMode {
		t.Fatalf("report = %+v, want system ignored", r)
	}
}

func TestToggle_PersistsOverride(t *testing.T) {
	opts := writeConfig(t, "")
	opts.Detector = stubDetector{dark: true}

	r, err := Toggle(opts)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if r.NightMode || !r.UserPreferred {
		t.Fatalf("after toggle = %+v, want day and overridden", r.Snapshot)
	}

	// The system still prefers dark, but the override must survive a restart.
	r, err = Status(opts)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if r.NightMode || !r.UserPreferred {
		t.Fatalf("after restart = %+v, want day and overridden", r.Snapshot)
	}
}

func TestToggle_SQLiteBackend(t *testing.T) {
	opts := writeConfig(t, fmt.Sprintf("prefs_backend = \"sqlite\"\nsqlite_path = %q\n", filepath.Join(t.TempDir(), "prefs.db")))
	opts.Detector = stubDetector{err: systheme.ErrUnavailable}

	if _, err := Toggle(opts); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	r, err := Status(opts)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if r.PrefsBackend != "sqlite" || !r.NightMode || !r.UserPreferred {
		t.Fatalf("report = %+v, want sqlite backend with persisted toggle", r)
	}
}

func TestOpen_BadConfigFails(t *testing.T) {
	opts := writeConfig(t, "prefs_backend = \"redis\"\n")
	if _, err := Status(opts); err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Status error = %v, want load config failure", err)
	}
}

func TestLogs_FormatsAndFilters(t *testing.T) {
	opts := writeConfig(t, "")
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := `{"level":"debug","ts":1700000000,"msg":"loaded theme preference"}
{"level":"info","ts":1700000001,"msg":"night mode toggled","night_mode":true}
`
	if err := os.WriteFile(cfg.LogPath(), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	lines, err := Logs(opts, 10, "info")
	if err != nil {
		t.Fatalf("Logs returned error: %v", err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "night mode toggled night_mode=true") {
		t.Fatalf("Logs = %q, want only the formatted info line", lines)
	}

	if _, err := Logs(opts, 10, "loud"); err == nil {
		t.Fatalf("Logs with bad level returned nil error")
	}
}

func TestStartWatcher_NilWhenUnavailable(t *testing.T) {
	cfg := config.Default()
	w := StartWatcher(context.Background(), cfg, stubDetector{err: systheme.ErrUnavailable}, zap.NewNop())
	if w != nil {
		t.Fatalf("StartWatcher = %v, want nil", w)
	}
}

func TestStartWatcher_StartsWhenAvailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := StartWatcher(ctx, config.Default(), stubDetector{dark: true}, zap.NewNop())
	if w == nil {
		t.Fatalf("StartWatcher = nil, want a watcher")
	}
	if !w.PrefersDark() {
		t.Fatalf("PrefersDark = false, want true")
	}
}
