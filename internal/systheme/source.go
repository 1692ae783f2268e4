package systheme

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/notify"
)

// Source is the OS colour scheme signal as seen by consumers: a current value
// and a change subscription.
type Source interface {
	PrefersDark() bool
	OnChange(fn func(dark bool)) (unsubscribe func())
}

// DefaultPollInterval is used when NewWatcher receives a non-positive interval.
const DefaultPollInterval = 2 * time.Second

// Watcher turns a Detector into a Source by polling it.
type Watcher struct {
	detector Detector
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	current bool
	known   bool

	changes notify.Registry[bool]
}

// Ensure Watcher implements Source at compile time.
var _ Source = (*Watcher)(nil)

// NewWatcher builds a Watcher. It does not start polling; call Start.
func NewWatcher(detector Detector, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{detector: detector, interval: interval, logger: logger}
}

// Probe reports whether the detector can answer at all in this environment.
// A successful probe also seeds the current value.
func (w *Watcher) Probe() bool {
	dark, err := w.detector.PrefersDark()
	if err != nil {
		level := zap.DebugLevel
		if !errors.Is(err, ErrUnavailable) {
			level = zap.WarnLevel
		}
		w.logger.Log(level, "colour scheme probe failed", zap.String("detector", w.detector.Name()), zap.Error(err))
		return false
	}
	w.observe(dark)
	return true
}

// Detector returns the underlying detector.
func (w *Watcher) Detector() Detector {
	return w.detector
}

// PrefersDark reads the detector now. On failure the last observed value is
// returned.
func (w *Watcher) PrefersDark() bool {
	w.poll()

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// OnChange registers fn for every observed change of the signal.
func (w *Watcher) OnChange(fn func(dark bool)) func() {
	return w.changes.Add(fn)
}

// Start launches a background goroutine that polls the detector until ctx is
// cancelled. It returns immediately.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.poll()
			}
		}
	}()
}

func (w *Watcher) poll() {
	dark, err := w.detector.PrefersDark()
	if err != nil {
		w.logger.Debug("colour scheme poll failed", zap.String("detector", w.detector.Name()), zap.Error(err))
		return
	}
	w.observe(dark)
}

// observe records dark and notifies listeners when it differs from the last
// observation. The first observation only seeds the value.
func (w *Watcher) observe(dark bool) {
	w.mu.Lock()
	changed := w.known && w.current != dark
	w.current = dark
	w.known = true
	w.mu.Unlock()

	if changed {
		w.logger.Info("system colour scheme changed", zap.Bool("dark", dark))
		w.changes.Emit(dark)
	}
}

// Manual is a Source whose value is set explicitly. Every Set is delivered to
// listeners as an event, even when the value is unchanged.
type Manual struct {
	mu   sync.Mutex
	dark bool

	changes notify.Registry[bool]
}

var _ Source = (*Manual)(nil)

// NewManual returns a Manual source with the given initial value.
func NewManual(dark bool) *Manual {
	return &Manual{dark: dark}
}

// PrefersDark implements Source.
func (m *Manual) PrefersDark() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

// OnChange implements Source.
func (m *Manual) OnChange(fn func(dark bool)) func() {
	return m.changes.Add(fn)
}

// Set updates the value and dispatches a change event.
func (m *Manual) Set(dark bool) {
	m.mu.Lock()
	m.dark = dark
	m.mu.Unlock()
	m.changes.Emit(dark)
}

// Listeners reports how many subscriptions are active.
func (m *Manual) Listeners() int {
	return m.changes.Len()
}
