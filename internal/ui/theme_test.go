package ui

import "testing"

func TestGetTheme_FallsBackToDefault(t *testing.T) {
	if got := GetTheme("nope").Name; got != DefaultThemeName {
		t.Fatalf("GetTheme(nope) = %q, want %q", got, DefaultThemeName)
	}
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	current := names[0]
	seen := map[string]bool{}
	for range names {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != names[0] || len(seen) != len(names) {
		t.Fatalf("cycle visited %v and ended at %q", seen, current)
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
}
