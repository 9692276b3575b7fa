package ui

import (
	"fmt"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// fieldOrNA returns value, or "N/A" when it is blank.
func fieldOrNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return strings.TrimSpace(value)
}

// formatMean renders a mean with two decimals.
func formatMean(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// pluralize returns "1 movie" or "N movies".
func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// wrap breaks text into lines no wider than width, splitting on spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if width <= 0 || len(words) == 0 {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	var lines []string
	var line strings.Builder
	for _, w := range words {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(w)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
