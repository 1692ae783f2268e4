package mode

import (
	"sync"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/notify"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/systheme"
)

// Persistence keys. They match what earlier clients wrote, so existing
// preferences carry over.
const (
	KeyNightMode     = "isNightMode"
	KeyUserPreferred = "userPreferredTheme"
)

// Snapshot is a point-in-time copy of the store's state.
type Snapshot struct {
	NightMode     bool
	UserPreferred bool
}

// Overridden reports whether the user's choice has replaced the system signal.
func (s Snapshot) Overridden() bool {
	return s.UserPreferred
}

// Store holds the night-mode preference. Every mutation is written through to
// the KV before the lock is released.
type Store struct {
	kv     prefs.KV
	logger *zap.Logger

	mu            sync.Mutex
	nightMode     bool
	userPreferred bool
	source        systheme.Source

	changes notify.Registry[bool]
}

// New returns a store over kv. State stays at its defaults until Initialize.
func New(kv prefs.KV, logger *zap.Logger) *Store {
	if kv == nil {
		kv = prefs.NewMemory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Initialize loads persisted state, then, when src is non-nil, reconciles with
// it and subscribes to its changes. The returned func releases that
// subscription; the caller owns it. With a nil src only the load happens and
// the returned func does nothing.
func (s *Store) Initialize(src systheme.Source) (unsubscribe func()) {
	s.load()

	s.mu.Lock()
	s.source = src
	s.mu.Unlock()

	if src == nil {
		s.logger.Debug("no system colour scheme source, following persisted preference only")
		return func() {}
	}

	s.ReconcileWithSystem()
	return s.SubscribeToSystemTheme()
}

// ReconcileWithSystem sets night mode to the current system signal unless the
// user has overridden it. The value is written even when unchanged.
func (s *Store) ReconcileWithSystem() {
	s.mu.Lock()
	src := s.source
	overridden := s.userPreferred
	s.mu.Unlock()

	if src == nil || overridden {
		return
	}

	// Read outside the lock: a Source may deliver change events
	// synchronously from PrefersDark, and those re-enter the store.
	s.applySystem(src.PrefersDark())
}

// SubscribeToSystemTheme follows system colour scheme changes until the
// returned func is called. Events are ignored once the user has overridden.
func (s *Store) SubscribeToSystemTheme() (unsubscribe func()) {
	s.mu.Lock()
	src := s.source
	s.mu.Unlock()

	if src == nil {
		return func() {}
	}
	return src.OnChange(s.applySystem)
}

// Toggle flips night mode and marks the preference as user-chosen.
func (s *Store) Toggle() {
	s.mu.Lock()
	s.nightMode = !s.nightMode
	s.userPreferred = true
	night := s.nightMode
	s.kv.Set(KeyNightMode, night)
	s.kv.Set(KeyUserPreferred, true)
	s.mu.Unlock()

	s.logger.Info("night mode toggled", zap.Bool("night_mode", night))
	s.changes.Emit(night)
}

// NightMode reports the effective theme.
func (s *Store) NightMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nightMode
}

// Snapshot returns the full state, including the override flag.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{NightMode: s.nightMode, UserPreferred: s.userPreferred}
}

// OnChange registers fn to run whenever the effective theme changes, from
// either a toggle or a system event. fn runs on the goroutine that caused the
// change.
func (s *Store) OnChange(fn func(night bool)) (unsubscribe func()) {
	return s.changes.Add(fn)
}

func (s *Store) load() {
	night, _ := s.kv.Get(KeyNightMode)
	preferred, _ := s.kv.Get(KeyUserPreferred)

	s.mu.Lock()
	s.nightMode = night
	s.userPreferred = preferred
	s.mu.Unlock()

	s.logger.Debug("loaded theme preference",
		zap.Bool("night_mode", night),
		zap.Bool("user_preferred", preferred),
	)
}

func (s *Store) applySystem(dark bool) {
	s.mu.Lock()
	if s.userPreferred {
		s.mu.Unlock()
		return
	}
	changed := s.nightMode != dark
	s.nightMode = dark
	s.kv.Set(KeyNightMode, dark)
	s.mu.Unlock()

	if changed {
		s.logger.Debug("night mode follows system", zap.Bool("night_mode", dark))
		s.changes.Emit(dark)
	}
}
