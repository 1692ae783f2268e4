package mode

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/systheme"
)

// countingKV records every write on top of an in-memory store.
type countingKV struct {
	*prefs.Memory
	mu     sync.Mutex
	writes map[string]int
}

func newCountingKV() *countingKV {
	return &countingKV{Memory: prefs.NewMemory(), writes: make(map[string]int)}
}

func (c *countingKV) Set(key string, value bool) {
	c.mu.Lock()
	c.writes[key]++
	c.mu.Unlock()
	c.Memory.Set(key, value)
}

func (c *countingKV) writeCount(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes[key]
}

func TestInitialize_DefaultsWhenNothingPersisted(t *testing.T) {
	s := New(prefs.NewMemory(), nil)
	unsubscribe := s.Initialize(nil)
	defer unsubscribe()

	assert.Equal(t, Snapshot{}, s.Snapshot())
	assert.False(t, s.NightMode())
}

func TestInitialize_ReconcilesThenSubscribes(t *testing.T) {
	src := systheme.NewManual(true)
	s := New(prefs.NewMemory(), nil)

	unsubscribe := s.Initialize(src)
	assert.True(t, s.NightMode(), "initial reconcile should adopt the system value")
	assert.Equal(t, 1, src.Listeners())

	unsubscribe()
	assert.Equal(t, 0, src.Listeners())

	src.Set(false)
	assert.True(t, s.NightMode(), "events after unsubscribe must be ignored")
}

func TestInitialize_OverriddenIgnoresSystemAtStartup(t *testing.T) {
	kv := prefs.NewMemory()
	kv.Set(KeyNightMode, false)
	kv.Set(KeyUserPreferred, true)

	s := New(kv, nil)
	defer s.Initialize(systheme.NewManual(true))()

	assert.Equal(t, Snapshot{NightMode: false, UserPreferred: true}, s.Snapshot())
}

func TestReconcileWithSystem_Idempotent(t *testing.T) {
	kv := newCountingKV()
	src := systheme.NewManual(true)
	s := New(kv, nil)
	defer s.Initialize(src)()

	s.ReconcileWithSystem()
	first := s.NightMode()
	s.ReconcileWithSystem()

	assert.True(t, first)
	assert.Equal(t, first, s.NightMode())
	// Initialize reconciles once, plus the two explicit calls.
	assert.Equal(t, 3, kv.writeCount(KeyNightMode), "reconcile writes through even when unchanged")
	assert.Equal(t, 0, kv.writeCount(KeyUserPreferred))
}

func TestReconcileWithSystem_NoSourceIsNoop(t *testing.T) {
	kv := newCountingKV()
	s := New(kv, nil)
	s.Initialize(nil)

	s.ReconcileWithSystem()
	assert.Equal(t, 0, kv.writeCount(KeyNightMode))
	assert.NotNil(t, s.SubscribeToSystemTheme())
}

func TestToggle_FlipsAndMarks(t *testing.T) {
	s := New(prefs.NewMemory(), nil)
	s.Initialize(nil)

	s.Toggle()
	assert.Equal(t, Snapshot{NightMode: true, UserPreferred: true}, s.Snapshot())
	assert.True(t, s.Snapshot().Overridden())

	s.Toggle()
	assert.Equal(t, Snapshot{NightMode: false, UserPreferred: true}, s.Snapshot())
}

func TestToggle_OverrideIsPermanent(t *testing.T) {
	src := systheme.NewManual(false)
	s := New(prefs.NewMemory(), nil)
	defer s.Initialize(src)()

	s.Toggle()
	require.True(t, s.NightMode())

	for _, dark := range []bool{false, true, false, false} {
		src.Set(dark)
		assert.True(t, s.NightMode(), "system event %v mutated an overridden store", dark)
	}
	s.ReconcileWithSystem()
	assert.True(t, s.NightMode())
}

func TestSystemEvents_TrackedBeforeOverride(t *testing.T) {
	src := systheme.NewManual(false)
	s := New(prefs.NewMemory(), nil)
	defer s.Initialize(src)()

	src.Set(true)
	assert.True(t, s.NightMode())
	src.Set(false)
	assert.False(t, s.NightMode())
}

func TestPersistence_RoundTripAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	first := New(prefs.OpenFile(path, nil), nil)
	first.Initialize(nil)
	first.Toggle()
	want := first.Snapshot()

	second := New(prefs.OpenFile(path, nil), nil)
	second.Initialize(nil)
	assert.Equal(t, want, second.Snapshot())
	assert.Equal(t, Snapshot{NightMode: true, UserPreferred: true}, second.Snapshot())
}

func TestScenario_SystemThenToggleThenSystem(t *testing.T) {
	src := systheme.NewManual(false)
	s := New(prefs.NewMemory(), nil)
	defer s.Initialize(src)()
	require.Equal(t, Snapshot{NightMode: false, UserPreferred: false}, s.Snapshot())

	src.Set(true)
	require.Equal(t, Snapshot{NightMode: true, UserPreferred: false}, s.Snapshot())

	s.Toggle()
	require.Equal(t, Snapshot{NightMode: false, UserPreferred: true}, s.Snapshot())

	src.Set(true)
	require.Equal(t, Snapshot{NightMode: false, UserPreferred: true}, s.Snapshot())
}

func TestOnChange_FiresOnlyOnChange(t *testing.T) {
	src := systheme.NewManual(false)
	s := New(prefs.NewMemory(), nil)
	defer s.Initialize(src)()

	var got []bool
	unsubscribe := s.OnChange(func(night bool) { got = append(got, night) })

	src.Set(false) // unchanged
	src.Set(true)
	s.Toggle()
	src.Set(true) // overridden
	unsubscribe()
	s.Toggle()

	assert.Equal(t, []bool{true, false}, got)
}

func TestToggle_WritesThrough(t *testing.T) {
	kv := newCountingKV()
	s := New(kv, nil)
	s.Initialize(nil)

	s.Toggle()

	night, ok := kv.Get(KeyNightMode)
	require.True(t, ok)
	assert.True(t, night)
	preferred, ok := kv.Get(KeyUserPreferred)
	require.True(t, ok)
	assert.True(t, preferred)
	assert.Equal(t, 1, kv.writeCount(KeyNightMode))
	assert.Equal(t, 1, kv.writeCount(KeyUserPreferred))
}

func TestConcurrentTogglesAndEvents(t *testing.T) {
	src := systheme.NewManual(false)
	s := New(prefs.NewMemory(), nil)
	defer s.Initialize(src)()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Toggle()
		}()
		go func(i int) {
			defer wg.Done()
			src.Set(i%2 == 0)
		}(i)
	}
	wg.Wait()

	// 50 toggles from an unknown start cannot be asserted exactly, but the
	// override must have stuck.
	assert.True(t, s.Snapshot().UserPreferred)
}
