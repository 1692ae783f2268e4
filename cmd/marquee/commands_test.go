package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/five82/marquee/internal/app"
	"github.com/five82/marquee/internal/mode"
)

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name   string
		report app.Report
		want   []string
	}{
		{
			name:   "following system",
			report: app.Report{Snapshot: mode.Snapshot{NightMode: true}, SystemAvailable: true, SystemDark: true, Detector: "portal", PrefsBackend: "file", PrefsPath: "/tmp/prefs.toml"},
			want:   []string{"theme:    night", "source:   system", "system:   dark (portal)", "prefs:    file (/tmp/prefs.toml)"},
		},
		{
			name:   "overridden",
			report: app.Report{Snapshot: mode.Snapshot{UserPreferred: true}, SystemAvailable: true, Detector: "env", PrefsBackend: "sqlite"},
			want:   []string{"theme:    day", "source:   user choice", "system:   light (env)", "prefs:    sqlite\n"},
		},
		{
			name:   "headless",
			report: app.Report{PrefsBackend: "memory"},
			want:   []string{"source:   saved preference", "system:   unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printReport(&buf, tt.report)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Fatalf("output = %q, want it to contain %q", buf.String(), w)
				}
			}
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"ui", "status", "toggle", "logs"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("Find(%q) = %v, %v; want the %s command", name, cmd, err, name)
		}
	}
}
