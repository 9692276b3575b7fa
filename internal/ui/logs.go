package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/popcorn/internal/logtail"
)

type logsMsg struct {
	records []logtail.Record
	err     error
}

func fetchLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logsMsg{}
		}
		records, err := logtail.Tail(path, LogTailLines, slog.LevelDebug)
		return logsMsg{records: records, err: err}
	}
}

// openLogs shows the log view and starts refreshing it.
func (m *Model) openLogs() tea.Cmd {
	m.showLogs = true
	m.resizeLogViewport()
	if m.logTicking {
		return fetchLogsCmd(m.logPath)
	}
	m.logTicking = true
	return tea.Batch(fetchLogsCmd(m.logPath), logTickCmd())
}

// handleLogsKey processes keys while the log view is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Back):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.search.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = max(m.width-4, 0)
	m.logViewport.Height = max(m.height-4, 0)
}

// updateLogViewport re-renders the records, staying pinned to the bottom
// when the view was already there.
func (m *Model) updateLogViewport() {
	atBottom := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if m.logErr != nil {
		return bg.Render("Cannot read log: "+m.logErr.Error(), styles.DangerText)
	}
	if len(m.logRecords) == 0 {
		return bg.Render("No log entries yet", styles.FaintText)
	}

	lines := make([]string, 0, len(m.logRecords))
	for _, rec := range m.logRecords {
		lines = append(lines, m.formatLogRecord(rec, styles, bg))
	}
	return strings.Join(lines, "\n")
}

// formatLogRecord renders "15:04:05 LEVEL [component] message key=value".
func (m Model) formatLogRecord(rec logtail.Record, styles Styles, bg BgStyle) string {
	var parts []string
	if !rec.Time.IsZero() {
		parts = append(parts, bg.Render(rec.Time.Format("15:04:05"), styles.FaintText))
	}
	parts = append(parts, bg.Render(fmt.Sprintf("%-5s", rec.Level.String()), levelStyle(rec.Level, styles)))
	if rec.Component != "" {
		parts = append(parts, bg.Render("["+rec.Component+"]", styles.AccentText))
	}
	parts = append(parts, bg.Render(rec.Message, styles.Text))
	for _, a := range rec.Attrs {
		parts = append(parts, bg.Render(a.Key+"=", styles.FaintText)+bg.Render(a.Value, styles.MutedText))
	}
	return strings.Join(parts, bg.Spaces(1))
}

func levelStyle(level slog.Level, styles Styles) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return styles.DangerText
	case level >= slog.LevelWarn:
		return styles.WarningText
	case level >= slog.LevelInfo:
		return styles.InfoText
	default:
		return styles.FaintText
	}
}

// renderLogView renders the full-screen log view.
func (m Model) renderLogView() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	title := "Log"
	if m.logPath != "" {
		title = "Log " + truncate(m.logPath, max(m.width-12, 8))
	}
	box := m.renderTitledBox(title, m.logViewport.View(), m.width, m.height-2, true)

	hints := bg.Render("j/k", styles.AccentText) + bg.Sep(":") + bg.Render("Scroll", styles.MutedText) +
		bg.Spaces(2) + bg.Render("g/G", styles.AccentText) + bg.Sep(":") + bg.Render("Top/Bottom", styles.MutedText) +
		bg.Spaces(2) + bg.Render("esc/L", styles.AccentText) + bg.Sep(":") + bg.Render("Close", styles.MutedText) +
		bg.Spaces(2) + bg.Render(fmt.Sprintf("%d entries", len(m.logRecords)), styles.FaintText)

	return m.renderNavBar() + "\n" + box + "\n" + styles.Header.Width(m.width).Render(hints)
}
