// Package ui provides the terminal shell for Marquee.
//
// The shell is a Bubble Tea program with a header (logo and current mode), a
// body listing the site sections, and a footer that says where the current
// theme comes from: the system signal, the user's own choice, or the saved
// default when no system signal is available.
//
// The UI never owns theme state. It reads mode.Store through the ModeStore
// interface, calls Toggle on "t", and re-reads the store whenever the store
// reports a change. Changes that originate from the system arrive on the
// watcher goroutine and are forwarded to the program as a message.
//
// Colors come from two palettes: Night (Nightfox) and Day (Dayfox). ForMode
// picks one from the store's NightMode value.
package ui
