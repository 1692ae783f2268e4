package systheme

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type fakeDetector struct {
	mu   sync.Mutex
	name string
	dark bool
	err  error
	hits int
}

func (f *fakeDetector) Name() string { return f.name }

func (f *fakeDetector) PrefersDark() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++
	return f.dark, f.err
}

func (f *fakeDetector) set(dark bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dark = dark
	f.err = err
}

func TestWatcher_ProbeSeedsWithoutEvent(t *testing.T) {
	d := &fakeDetector{name: "fake", dark: true}
	w := NewWatcher(d, 0, nil)

	events := 0
	w.OnChange(func(bool) { events++ })

	if !w.Probe() {
		t.Fatalf("Probe = false, want true")
	}
	if !w.PrefersDark() {
		t.Fatalf("PrefersDark = false, want true")
	}
	if events != 0 {
		t.Fatalf("events = %d, want 0 for the seeding observation", events)
	}
	if w.interval != DefaultPollInterval {
		t.Fatalf("interval = %v, want %v", w.interval, DefaultPollInterval)
	}
}

func TestWatcher_ProbeUnavailable(t *testing.T) {
	w := NewWatcher(&fakeDetector{name: "fake", err: ErrUnavailable}, time.Second, nil)
	if w.Probe() {
		t.Fatalf("Probe = true, want false")
	}
}

func TestWatcher_PollDispatchesOnlyChanges(t *testing.T) {
	d := &fakeDetector{name: "fake"}
	w := NewWatcher(d, time.Second, nil)
	w.Probe()

	var got []bool
	w.OnChange(func(dark bool) { got = append(got, dark) })

	w.poll()
	d.set(true, nil)
	w.poll()
	w.poll()
	d.set(false, nil)
	w.poll()

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Fatalf("events = %v, want [true false]", got)
	}
}

func TestWatcher_ErrorKeepsLastValue(t *testing.T) {
	d := &fakeDetector{name: "fake", dark: true}
	w := NewWatcher(d, time.Second, nil)
	w.Probe()

	d.set(false, errors.New("bus gone"))
	if !w.PrefersDark() {
		t.Fatalf("PrefersDark = false, want last known true")
	}
}

func TestWatcher_UnsubscribeStopsEvents(t *testing.T) {
	d := &fakeDetector{name: "fake"}
	w := NewWatcher(d, time.Second, nil)
	w.Probe()

	events := 0
	unsubscribe := w.OnChange(func(bool) { events++ })
	d.set(true, nil)
	w.poll()
	unsubscribe()
	d.set(false, nil)
	w.poll()

	if events != 1 {
		t.Fatalf("events = %d, want 1", events)
	}
}

func TestWatcher_StartStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := &fakeDetector{name: "fake"}
	w := NewWatcher(d, 5*time.Millisecond, nil)
	w.Probe()

	changed := make(chan bool, 1)
	w.OnChange(func(dark bool) {
		select {
		case changed <- dark:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	d.set(true, nil)

	select {
	case dark := <-changed:
		if !dark {
			t.Fatalf("event = false, want true")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change event from background poller")
	}

	// VerifyNone retries, which covers the poller noticing cancellation.
	cancel()
}

func TestManual_SetAlwaysDispatches(t *testing.T) {
	m := NewManual(false)

	var got []bool
	unsubscribe := m.OnChange(func(dark bool) { got = append(got, dark) })
	m.Set(true)
	m.Set(true)

	if len(got) != 2 {
		t.Fatalf("events = %v, want two deliveries", got)
	}
	if !m.PrefersDark() {
		t.Fatalf("PrefersDark = false, want true")
	}
	if m.Listeners() != 1 {
		t.Fatalf("Listeners = %d, want 1", m.Listeners())
	}
	unsubscribe()
	if m.Listeners() != 0 {
		t.Fatalf("Listeners = %d, want 0 after unsubscribe", m.Listeners())
	}
}
