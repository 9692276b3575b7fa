// Package ui provides the Bubble Tea terminal interface for popcorn.
//
// # Layout
//
//	┌ nav bar: logo, search input, "Found N results" ──────────────┐
//	┌ [–] Results ──────────────┐┌ [–] Watched / Movie ───────────┐
//	│ search results            ││ summary + watched list, or     │
//	│                           ││ the open movie with its rating │
//	└───────────────────────────┘└────────────────────────────────┘
//	  command bar: key hints, notices, theme
//
// Both boxes collapse with [ and ]. Below LayoutCompactWidth they stack.
//
// # Data Flow
//
// Typing in the search input starts a search cycle (internal/search); the
// blocking request runs as a tea.Cmd and comes back as searchResultMsg.
// Selecting a result starts a detail request (internal/detail) the same way.
// Confirming a rating appends to the watched list owned by state.Store, which
// writes it back to the key-value store.
//
// # Shortcuts
//
// Every key that is not consumed by the search input is first offered to the
// shortcut.Binder. The "/" binding lives for the lifetime of the model; the
// Escape binding exists only while a movie is open. Binder actions cannot
// touch the model directly, so they queue intents that Update applies.
//
// # Window Title
//
// The title follows the open movie ("Movie | <title>") and returns to
// "popcorn" when it closes.
package ui
