package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/popcorn/internal/watched"
)

// renderWatched renders the summary followed by the watched list.
func (m Model) renderWatched(width, height int, bgColor string) string {
	lines := m.renderSummary(bgColor)
	lines = append(lines, "")

	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	entries := m.snapshot.Entries
	if len(entries) == 0 {
		lines = append(lines, bg.Render("Nothing here yet. Open a movie and rate it.", styles.FaintText))
		return strings.Join(lines, "\n")
	}

	rows := max(height-len(lines), 1)
	start, end := rowWindow(len(entries), m.watchedRow, rows)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatWatchedRow(entries[i], i == m.watchedRow, width, bgColor))
	}
	return strings.Join(lines, "\n")
}

// renderSummary renders the count and the three means.
func (m Model) renderSummary(bgColor string) []string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	sum := m.snapshot.Summary

	stats := []string{
		bg.Render("#️⃣ "+pluralize(sum.Count, "movie"), styles.Text),
		bg.Render("⭐ "+formatMean(sum.MeanImdbRating), styles.Text),
		bg.Render("🌟 "+formatMean(sum.MeanUserRating), styles.Text),
		bg.Render("⏳ "+formatMean(sum.MeanRuntime)+" min", styles.Text),
	}
	return []string{
		bg.Render("MOVIES YOU WATCHED", styles.AccentText.Bold(true)),
		strings.Join(stats, bg.Spaces(2)),
	}
}

func (m Model) formatWatchedRow(e watched.Entry, cursor bool, width int, bgColor string) string {
	rowBg := bgColor
	if cursor && m.focus == paneRight {
		rowBg = m.theme.SelectionBg
	}
	styles := m.theme.Styles().WithBackground(rowBg)
	bg := NewBgStyle(rowBg)

	stats := fmt.Sprintf("⭐ %.1f  🌟 %d  ⏳ %d min", e.ImdbRating, e.UserRating, e.Runtime)
	titleWidth := max(width-len([]rune(stats))-4, 4)
	row := bg.Render(padRight(truncate(e.Title, titleWidth), titleWidth), styles.Text.Bold(cursor)) +
		bg.Spaces(2) +
		bg.Render(stats, styles.MutedText)
	return bg.FillLine(row, width)
}

// addWatched confirms the current rating and closes the detail view.
func (m *Model) addWatched() tea.Cmd {
	if !m.canRate() || !m.rating.CanConfirm() {
		return nil
	}
	movie := m.detailState.Movie
	movie.ImdbID = m.detailState.ID
	entry, err := watched.NewEntry(movie, m.rating.Value(), m.rating.Decisions())
	if err != nil {
		m.notice = err.Error()
		m.logger.Warn("rejected watched entry", "id", movie.ImdbID, "error", err)
		return nil
	}
	if err := m.store.Add(entry); err != nil {
		m.notice = "Could not save watched list"
		m.logger.Error("save watched list failed", "id", entry.ImdbID, "error", err)
	} else {
		m.logger.Info("added to watched", "id", entry.ImdbID, "rating", entry.UserRating, "decisions", entry.RatingDecisions)
	}
	m.snapshot = m.store.Snapshot()
	m.clampRows()
	return m.closeDetail()
}

// removeWatched deletes the highlighted watched entry.
func (m *Model) removeWatched() {
	entries := m.snapshot.Entries
	if m.watchedRow < 0 || m.watchedRow >= len(entries) {
		return
	}
	id := entries[m.watchedRow].ImdbID
	if _, err := m.store.Remove(id); err != nil {
		m.notice = "Could not save watched list"
		m.logger.Error("save watched list failed", "id", id, "error", err)
	} else {
		m.logger.Info("removed from watched", "id", id)
	}
	m.snapshot = m.store.Snapshot()
	m.clampRows()
}
