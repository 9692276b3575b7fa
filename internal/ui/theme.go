package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Nav bar and footer
	SurfaceAlt string // Unfocused boxes
	FocusBg    string // Focused box

	// List colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Rating stars
	StarOn  string
	StarOff string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		StarOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.StarOn)),

		StarOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.StarOff)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	StarOn  lipgloss.Style
	StarOff lipgloss.Style
}

// WithBackground returns a copy of Styles with every style on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Background:  s.Background.Background(bg),
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),
		Header:      s.Header.Background(bg),
		Logo:        s.Logo.Background(bg),
		Selected:    s.Selected,
		StarOn:      s.StarOn.Background(bg),
		StarOff:     s.StarOff.Background(bg),
	}
}

// DefaultThemeName is used when no theme was saved.
const DefaultThemeName = "Popcorn"

var themes = map[string]Theme{
	"Popcorn":  popcornTheme(),
	"Nightfox": nightfoxTheme(),
	"Paper":    paperTheme(),
}

var themeOrder = []string{"Popcorn", "Nightfox", "Paper"}

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return popcornTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func popcornTheme() Theme {
	return Theme{
		Name: "Popcorn",

		Background: "#212529",
		Surface:    "#343a40",
		SurfaceAlt: "#2b3035",
		FocusBg:    "#32383e",

		SelectionBg:   "#6741d9",
		SelectionText: "#f8f9fa",

		Border:      "#495057",
		BorderFocus: "#7950f2",

		Text:    "#dee2e6",
		Muted:   "#adb5bd",
		Faint:   "#868e96",
		Accent:  "#9775fa",
		Success: "#69db7c",
		Warning: "#fcc419",
		Danger:  "#fa5252",
		Info:    "#66d9e8",

		StarOn:  "#fcc419",
		StarOff: "#495057",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		StarOn:  "#dbc074",
		StarOff: "#39506d",
	}
}

func paperTheme() Theme {
	return Theme{
		Name: "Paper",

		Background: "#f8f9fa",
		Surface:    "#e9ecef",
		SurfaceAlt: "#f1f3f5",
		FocusBg:    "#ffffff",

		SelectionBg:   "#d0bfff",
		SelectionText: "#212529",

		Border:      "#ced4da",
		BorderFocus: "#7048e8",

		Text:    "#212529",
		Muted:   "#495057",
		Faint:   "#868e96",
		Accent:  "#7048e8",
		Success: "#2b8a3e",
		Warning: "#e67700",
		Danger:  "#c92a2a",
		Info:    "#0c8599",

		StarOn:  "#f59f00",
		StarOff: "#ced4da",
	}
}
