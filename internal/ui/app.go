package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/mode"
)

// ModeStore is the part of mode.Store the UI depends on.
type ModeStore interface {
	NightMode() bool
	Toggle()
	Snapshot() mode.Snapshot
	OnChange(fn func(night bool)) (unsubscribe func())
}

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   ModeStore
	// FollowsSystem reports whether a system colour scheme source is wired.
	FollowsSystem bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	store         ModeStore
	followsSystem bool

	theme   Theme
	keys    keyMap
	help    help.Model
	section int

	width    int
	height   int
	ready    bool
	showHelp bool
}

// modeChangedMsg tells the model to re-read the store. It carries no value so
// that out-of-order delivery cannot apply a stale theme.
type modeChangedMsg struct{}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	m := Model{
		store:         opts.Store,
		followsSystem: opts.FollowsSystem,
		keys:          DefaultKeyMap(),
		help:          help.New(),
	}
	m.applyTheme()
	return m
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a mode store")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the event loop receives, and the loop itself calls
	// Toggle, so delivery must not happen on the caller's goroutine.
	unsubscribe := opts.Store.OnChange(func(bool) {
		go p.Send(modeChangedMsg{})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case modeChangedMsg:
		m.applyTheme()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.ToggleMode):
		m.store.Toggle()
		m.applyTheme()
	case key.Matches(msg, m.keys.Next):
		m.section = (m.section + 1) % len(sections)
	case key.Matches(msg, m.keys.Prev):
		m.section = (m.section + len(sections) - 1) % len(sections)
	}
	return m, nil
}

func (m *Model) applyTheme() {
	night := false
	if m.store != nil {
		night = m.store.NightMode()
	}
	m.theme = ForMode(night)
}
