package systheme

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Detector reads the host's current dark/light preference.
type Detector interface {
	Name() string
	PrefersDark() (bool, error)
}

// ErrUnavailable reports that a detector has no access to a colour scheme
// signal in this environment.
var ErrUnavailable = errors.New("colour scheme signal unavailable")

// EnvVar overrides every other detector when set to "dark" or "light".
const EnvVar = "MARQUEE_COLOR_SCHEME"

// Default returns the detector chain for this platform: the environment
// override first, then the desktop signal, then the terminal background.
func Default() Detector {
	return NewChain(Env(), platformDetector(), Terminal())
}

type envDetector struct{}

// Env returns a detector driven by the MARQUEE_COLOR_SCHEME variable.
func Env() Detector {
	return envDetector{}
}

func (envDetector) Name() string { return "env" }

func (envDetector) PrefersDark() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar))) {
	case "":
		return false, ErrUnavailable
	case "dark":
		return true, nil
	case "light":
		return false, nil
	default:
		return false, fmt.Errorf("%s: unrecognised value %q", EnvVar, os.Getenv(EnvVar))
	}
}

// terminalDetector asks the terminal for its background colour once. Querying
// repeatedly would interleave escape sequences with a running TUI.
type terminalDetector struct {
	once sync.Once
	dark bool
	err  error
}

// Terminal returns a detector based on the terminal background colour.
func Terminal() Detector {
	return &terminalDetector{}
}

func (t *terminalDetector) Name() string { return "terminal" }

func (t *terminalDetector) PrefersDark() (bool, error) {
	t.once.Do(func() {
		output := termenv.NewOutput(os.Stdout)
		if output.Profile == termenv.Ascii {
			t.err = ErrUnavailable
			return
		}
		t.dark = output.HasDarkBackground()
	})
	return t.dark, t.err
}

// Chain tries each detector in order and answers with the first that works.
type Chain struct {
	detectors []Detector

	mu   sync.Mutex
	last string
}

// NewChain builds a Chain, skipping nil detectors.
func NewChain(detectors ...Detector) *Chain {
	c := &Chain{}
	for _, d := range detectors {
		if d != nil {
			c.detectors = append(c.detectors, d)
		}
	}
	return c
}

// Name reports the detector that last produced an answer, or the full chain
// when none has yet.
func (c *Chain) Name() string {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()
	if last != "" {
		return last
	}
	names := make([]string, 0, len(c.detectors))
	for _, d := range c.detectors {
		names = append(names, d.Name())
	}
	return strings.Join(names, ",")
}

// PrefersDark implements Detector. Detectors reporting ErrUnavailable are
// skipped silently; other failures are joined into the returned error.
func (c *Chain) PrefersDark() (bool, error) {
	var errs []error
	for _, d := range c.detectors {
		dark, err := d.PrefersDark()
		if err == nil {
			c.mu.Lock()
			c.last = d.Name()
			c.mu.Unlock()
			return dark, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
		}
	}
	if len(errs) == 0 {
		return false, ErrUnavailable
	}
	return false, errors.Join(errs...)
}
