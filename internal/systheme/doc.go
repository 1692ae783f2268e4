// Package systheme reads the host's dark/light colour scheme preference and
// reports changes to it.
//
// # Detectors
//
// A Detector answers "does the host prefer dark right now?". Default builds a
// Chain consulted in this order:
//
//   - env: MARQUEE_COLOR_SCHEME=dark|light, for containers and scripted runs
//   - portal (Linux/BSD): org.freedesktop.appearance color-scheme via the XDG
//     desktop portal
//   - defaults (macOS): AppleInterfaceStyle
//   - registry (Windows): AppsUseLightTheme
//   - terminal: background colour reported by the terminal, queried once
//
// Detectors return ErrUnavailable when the environment has no such signal
// (no session bus, no display, dumb terminal). A Chain skips those quietly.
//
// # Sources
//
// Consumers depend on Source, not Detector. Watcher polls a Detector at a
// fixed interval and emits an event whenever the answer changes. Manual is
// driven by explicit Set calls and emits on every call, which makes it the
// natural stand-in for an OS change event in tests.
//
// Listener callbacks run on the goroutine that observed the change: the
// watcher's poll goroutine, or whoever called PrefersDark or Set.
package systheme
