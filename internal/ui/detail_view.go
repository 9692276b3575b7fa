package ui

import (
	"fmt"
	"strings"

	"github.com/five82/popcorn/internal/watched"
)

// renderDetail renders the open movie. While loading only the indicator is
// shown.
func (m Model) renderDetail(width, height int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	st := m.detailState
	if st.Loading {
		return bg.Render(m.spinner.View()+" Loading...", styles.MutedText)
	}
	if st.Err != "" {
		return bg.Render("⛔ "+st.Err, styles.DangerText)
	}
	if !st.Loaded {
		return bg.Render("No details available. Press esc to go back.", styles.FaintText)
	}

	mv := st.Movie
	var lines []string
	lines = append(lines,
		bg.Render("← esc", styles.FaintText),
		bg.Render(truncate(mv.Title, width), styles.Text.Bold(true)),
		bg.Render(fmt.Sprintf("%s • %s", fieldOrNA(mv.Released), fieldOrNA(mv.Runtime)), styles.MutedText),
		bg.Render(fieldOrNA(mv.Genre), styles.MutedText),
		bg.Render("⭐ IMDb rating: "+fieldOrNA(mv.ImdbRating), styles.Text),
	)
	if mv.HasPoster() {
		lines = append(lines, bg.Render("🖼 "+truncate(mv.Poster, max(width-3, 1)), styles.FaintText))
	}
	lines = append(lines, "")

	if entry, ok := m.store.Find(st.ID); ok {
		lines = append(lines, bg.Render(fmt.Sprintf("You rated this movie %d ⭐", entry.UserRating), styles.WarningText))
	} else {
		lines = append(lines, m.renderStars(m.rating.Value(), bgColor))
		if m.rating.CanConfirm() {
			lines = append(lines, bg.Render("+ Add to list (a)", styles.SuccessText))
		} else {
			lines = append(lines, bg.Render("Rate with 1-9, 0 for 10", styles.FaintText))
		}
	}
	lines = append(lines, "")

	for _, l := range wrap(mv.Plot, width) {
		lines = append(lines, bg.Render(l, styles.Text.Italic(true)))
	}
	for _, l := range wrap("Starring "+fieldOrNA(mv.Actors), width) {
		lines = append(lines, bg.Render(l, styles.MutedText))
	}
	for _, l := range wrap("Directed by "+fieldOrNA(mv.Director), width) {
		lines = append(lines, bg.Render(l, styles.MutedText))
	}

	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderStars renders a ten star rating control followed by the value.
func (m Model) renderStars(value int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var b strings.Builder
	for i := watched.MinRating; i <= watched.MaxRating; i++ {
		if i <= value {
			b.WriteString(bg.Render("★", styles.StarOn))
		} else {
			b.WriteString(bg.Render("☆", styles.StarOff))
		}
	}
	label := ""
	if value > 0 {
		label = fmt.Sprintf("%d", value)
	}
	return b.String() + bg.Spaces(1) + bg.Render(label, styles.WarningText)
}
