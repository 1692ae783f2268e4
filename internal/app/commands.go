package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/logtail"
	"github.com/five82/marquee/internal/mode"
	"github.com/five82/marquee/internal/systheme"
)

// Report describes the theme state for the status and toggle commands.
type Report struct {
	mode.Snapshot
	SystemAvailable bool
	SystemDark      bool
	Detector        string
	PrefsBackend    string
	PrefsPath       string
}

// Status loads the store the same way the TUI does, reconciling with the
// system signal when one is available, and reports the result.
func Status(opts Options) (Report, error) {
	rt, err := open(opts)
	if err != nil {
		return Report{}, err
	}
	defer rt.close()

	return rt.report(newWatcher(rt.cfg, opts.Detector, rt.logger.Named("systheme"))), nil
}

// Toggle applies one toggle to the persisted preference.
func Toggle(opts Options) (Report, error) {
	rt, err := open(opts)
	if err != nil {
		return Report{}, err
	}
	defer rt.close()

	watcher := newWatcher(rt.cfg, opts.Detector, rt.logger.Named("systheme"))
	report := rt.report(watcher)
	rt.store.Toggle()
	report.Snapshot = rt.store.Snapshot()
	return report, nil
}

// Logs returns up to n formatted lines from the log file at or above level.
func Logs(opts Options, n int, level string) ([]string, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	lines, err := logtail.Read(cfg.LogPath(), n, lvl)
	if err != nil {
		return nil, fmt.Errorf("tail log: %w", err)
	}
	for i, line := range lines {
		lines[i] = logtail.Format(line)
	}
	return lines, nil
}

// report initialises the store against watcher (which may be nil) and
// releases the subscription straight away.
func (rt *runtime) report(watcher *systheme.Watcher) Report {
	var src systheme.Source
	r := Report{PrefsBackend: rt.cfg.PrefsBackend, PrefsPath: rt.cfg.PrefsPath}
	if watcher != nil {
		src = watcher
		r.SystemAvailable = true
		r.SystemDark = watcher.PrefersDark()
		r.Detector = watcher.Detector().Name()
	}

	rt.store.Initialize(src)()
	r.Snapshot = rt.store.Snapshot()

	rt.logger.Debug("theme status",
		zap.Bool("night_mode", r.NightMode),
		zap.Bool("user_preferred", r.UserPreferred),
		zap.Bool("system_available", r.SystemAvailable),
	)
	return r
}
