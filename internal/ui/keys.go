package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings handled directly by the model.
// Escape and "/" go through the shortcut binder instead.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding

	// Boxes
	ToggleLeft  key.Binding
	ToggleRight key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Lists
	Select key.Binding
	Remove key.Binding

	// Rating
	RateUp   key.Binding
	RateDown key.Binding
	Rate     key.Binding
	Add      key.Binding
	Back     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log view"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next pane"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous pane"),
		),

		ToggleLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Toggle results box"),
		),
		ToggleRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Toggle watched box"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open/close movie"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove from watched"),
		),

		RateUp: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("right", "Rating up"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("left", "Rating down"),
		),
		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9/0", "Rate 1-10"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to watched"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close movie"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down, k.Top, k.Bottom},
		{k.Select, k.Back, k.Remove},
		{k.Rate, k.RateUp, k.RateDown, k.Add},
		{k.ToggleLeft, k.ToggleRight, k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
