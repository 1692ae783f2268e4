package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay from the key map so the two cannot
// drift apart.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	groups := []struct {
		title string
		rows  [][2]string
	}{
		{"Navigation", bindingRows(m.keys.Next, m.keys.Prev)},
		{"General", bindingRows(m.keys.ToggleMode, m.keys.Help, m.keys.Quit)},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, g := range groups {
		b.WriteString(styles.AccentText.Bold(true).Render(g.title))
		b.WriteString("\n")
		for _, row := range g.rows {
			b.WriteString(keyStyle.Render(row[0]))
			b.WriteString(styles.Text.Render(row[1]))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func bindingRows(bindings ...key.Binding) [][2]string {
	rows := make([][2]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		rows = append(rows, [2]string{h.Key, h.Desc})
	}
	return rows
}
