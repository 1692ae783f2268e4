package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// section is one area of the movie site shown in the shell.
type section struct {
	key   string
	title string
	blurb string
}

var sections = []section{
	{"latest", "Latest", "Films now showing, ranked by audience score."},
	{"former", "Former", "Past releases with box-office and rating history."},
	{"coming", "Coming", "Upcoming releases and how many people want to see them."},
	{"search", "Search", "Find a film by title, director or category."},
	{"chat", "Chat", "Talk about a film with other viewers."},
}

const logoText = "MARQUEE"

func (m Model) renderMain() string {
	styles := m.theme.Styles()
	width := m.width

	header := m.renderHeader(styles, width)
	footer := m.renderFooter(styles, width)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body := styles.Background.
		Width(width).
		Height(bodyHeight).
		Padding(1, 2).
		Render(m.renderBody(styles))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader(styles Styles, width int) string {
	bg := lipgloss.Color(m.theme.Surface)
	logo := styles.Logo.Background(bg).Render(logoText)
	indicator := styles.AccentText.Background(bg).Render(modeLabel(m.theme.Night))

	gap := width - lipgloss.Width(logo) - lipgloss.Width(indicator) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap))
	return styles.Header.Width(width).Render(logo + spacer + indicator)
}

func (m Model) renderBody(styles Styles) string {
	tabs := make([]string, 0, len(sections))
	for i, s := range sections {
		if i == m.section {
			tabs = append(tabs, styles.SectionBadge(s.key).Bold(true).Render(s.title))
			continue
		}
		tabs = append(tabs, styles.MutedText.Padding(0, 1).Render(s.title))
	}

	current := sections[m.section]
	card := styles.Card.
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Render(
			styles.Text.Bold(true).Render(current.title) + "\n" +
				styles.MutedText.Render(current.blurb),
		)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		card,
	)
}

func (m Model) renderFooter(styles Styles, width int) string {
	status := m.statusLine()
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return styles.Footer.Width(width).Render(status + "  " + helpView)
}

// statusLine describes where the current theme comes from.
func (m Model) statusLine() string {
	label := modeLabel(m.theme.Night)
	if m.store != nil && m.store.Snapshot().Overridden() {
		return label + " · your choice"
	}
	if m.followsSystem {
		return label + " · following system"
	}
	return label + " · saved default"
}

func modeLabel(night bool) string {
	if night {
		return "Night"
	}
	return "Day"
}
