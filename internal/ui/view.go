package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders nav bar, the two boxes and the command bar.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderNavBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent(m.height - 2))
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderContent lays the boxes out side by side, or stacked on narrow
// terminals.
func (m Model) renderContent(height int) string {
	if m.width < LayoutCompactWidth {
		top := height / 2
		bottom := height - top
		left := m.renderLeftBox(m.width, top)
		right := m.renderRightBox(m.width, bottom)
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	leftWidth := max(m.width/2, LayoutMinBoxWidth)
	rightWidth := m.width - leftWidth
	left := m.renderLeftBox(leftWidth, height)
	right := m.renderRightBox(rightWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderLeftBox(width, height int) string {
	focused := m.focus == paneResults
	title := fmt.Sprintf("[%s] Results", m.leftBox.indicator())
	if !m.leftBox.open {
		return m.renderTitledBox(title, m.collapsedHint("["), width, height, focused)
	}
	content := m.renderResults(width-2, height-2, m.boxBg(focused))
	return m.renderTitledBox(title, content, width, height, focused)
}

func (m Model) renderRightBox(width, height int) string {
	focused := m.focus == paneRight
	title := fmt.Sprintf("[%s] Watched", m.rightBox.indicator())
	if m.detailState.Open() {
		title = fmt.Sprintf("[%s] Movie", m.rightBox.indicator())
	}
	if !m.rightBox.open {
		return m.renderTitledBox(title, m.collapsedHint("]"), width, height, focused)
	}
	var content string
	if m.detailState.Open() {
		content = m.renderDetail(width-2, height-2, m.boxBg(focused))
	} else {
		content = m.renderWatched(width-2, height-2, m.boxBg(focused))
	}
	return m.renderTitledBox(title, content, width, height, focused)
}

func (m Model) collapsedHint(key string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Faint)).
		Render(fmt.Sprintf("Collapsed, press %s to expand", key))
}

func (m Model) boxBg(focused bool) string {
	if focused {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

// renderTitledBox renders content in a bordered box with the title
// embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr := m.theme.Border
	if focused {
		borderColorStr = m.theme.BorderFocus
	}
	bg := NewBgStyle(m.boxBg(focused))
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)
	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				bg.FillLine(line, innerWidth)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// renderNavBar renders the logo, the search input and the result count.
func (m Model) renderNavBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	logo := bg.Render("🍿 popcorn", styles.Logo)
	count := bg.Render("Found ", styles.MutedText) +
		bg.Render(fmt.Sprintf("%d", len(m.searchState.Results)), styles.Text.Bold(true)) +
		bg.Render(" results", styles.MutedText)

	inputWidth := max(m.width-lipgloss.Width(logo)-lipgloss.Width(count)-8, 10)
	m.input.Width = inputWidth - lipgloss.Width(m.input.Prompt) - 1
	input := bg.FillLine(m.input.View(), inputWidth)

	parts := []string{logo, input, count}
	if m.snapshot.Degraded() {
		parts = append(parts, bg.Render("unsaved", styles.DangerText))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, bg.Spaces(2)))
}

// renderCommandBar renders the key hints for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	switch {
	case m.focus == paneSearch:
		commands = []cmd{{"enter", "Results"}, {"tab", "Focus"}, {"esc", "Leave search"}}
	case m.detailState.Open() && m.canRate():
		commands = []cmd{{"1-9/0", "Rate"}, {"←/→", "Adjust"}, {"a", "Add"}, {"esc", "Close"}, {"?", "More"}}
	case m.detailState.Open():
		commands = []cmd{{"esc", "Close"}, {"tab", "Focus"}, {"?", "More"}}
	case m.focus == paneRight:
		commands = []cmd{{"j/k", "Navigate"}, {"x", "Remove"}, {"/", "Search"}, {"tab", "Focus"}, {"?", "More"}}
	default:
		commands = []cmd{{"j/k", "Navigate"}, {"enter", "Open"}, {"/", "Search"}, {"[ ]", "Boxes"}, {"L", "Logs"}, {"?", "More"}}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if m.notice != "" {
		segments = append(segments, bg.Render(truncate(m.notice, 40), styles.DangerText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// rowWindow returns the [start, end) range of rows to show so that cursor
// stays visible within height rows.
func rowWindow(total, cursor, height int) (int, int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, total)
	return start, end
}
