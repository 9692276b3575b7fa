package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"Navigation", helpRows(m.keys.Tab, m.keys.ShiftTab, m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom)},
		{"Search", [][2]string{{"/", "Focus search and clear it"}, {"enter", "Jump to results"}}},
		{"Movies", helpRows(m.keys.Select, m.keys.Back, m.keys.Remove)},
		{"Rating", helpRows(m.keys.Rate, m.keys.RateUp, m.keys.RateDown, m.keys.Add)},
		{"General", helpRows(m.keys.ToggleLeft, m.keys.ToggleRight, m.keys.Logs, m.keys.CycleTheme, m.keys.Help, m.keys.Quit)},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, row := range section.rows {
			b.WriteString(keyStyle.Render(row[0]))
			b.WriteString(styles.Text.Render(row[1]))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

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

func helpRows(bindings ...key.Binding) [][2]string {
	rows := make([][2]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		rows = append(rows, [2]string{h.Key, h.Desc})
	}
	return rows
}
