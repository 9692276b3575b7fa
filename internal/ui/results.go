package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/popcorn/internal/omdb"
)

// renderResults renders the search results box content.
func (m Model) renderResults(width, height int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	switch {
	case m.searchState.Loading():
		return bg.Render(m.spinner.View()+" Loading...", styles.MutedText)
	case m.searchState.Err != "":
		return bg.Render("⛔ "+m.searchState.Err, styles.DangerText)
	case len(m.searchState.Results) == 0:
		if strings.TrimSpace(m.searchState.Query) == "" {
			return bg.Render("Press / and start typing to search", styles.FaintText)
		}
		return bg.Render("Keep typing...", styles.FaintText)
	}

	results := m.searchState.Results
	start, end := rowWindow(len(results), m.resultRow, height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatResultRow(results[i], i == m.resultRow, width, bgColor))
	}
	return strings.Join(lines, "\n")
}

// formatResultRow renders one result as "● Title  🗓 Year".
func (m Model) formatResultRow(r omdb.SearchResult, cursor bool, width int, bgColor string) string {
	rowBg := bgColor
	if cursor && m.focus == paneResults {
		rowBg = m.theme.SelectionBg
	}
	styles := m.theme.Styles().WithBackground(rowBg)
	bg := NewBgStyle(rowBg)

	marker := "  "
	if m.detailState.Open() && m.detailState.ID == r.ImdbID {
		marker = "● "
	}
	if m.store.Contains(r.ImdbID) {
		marker = "✓ "
	}

	year := "🗓 " + fieldOrNA(r.Year)
	titleWidth := max(width-lipgloss.Width(year)-lipgloss.Width(marker)-2, 4)

	titleStyle := styles.Text
	if cursor && m.focus == paneResults {
		titleStyle = styles.Selected.Bold(true)
	}
	row := bg.Render(marker, styles.AccentText) +
		bg.Render(padRight(truncate(r.Title, titleWidth), titleWidth), titleStyle) +
		bg.Spaces(2) +
		bg.Render(year, styles.MutedText)
	return bg.FillLine(row, width)
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
