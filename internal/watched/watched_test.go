package watched

import (
	"errors"
	"math"
	"testing"

	"github.com/five82/popcorn/internal/omdb"
)

func TestNewEntry_ParsesMovieFields(t *testing.T) {
	movie := omdb.Movie{ImdbID: "tt1", Title: "X", Year: "2000", Runtime: "155 min", ImdbRating: "8.5"}
	entry, err := NewEntry(movie, 8, 2)
	if err != nil {
		t.Fatalf("NewEntry returned error: %v", err)
	}
	if entry.Runtime != 155 {
		t.Fatalf("Runtime = %d, want 155", entry.Runtime)
	}
	if entry.ImdbRating != 8.5 {
		t.Fatalf("ImdbRating = %v, want 8.5", entry.ImdbRating)
	}
	if entry.UserRating != 8 || entry.RatingDecisions != 2 {
		t.Fatalf("entry = %#v, want rating 8 decisions 2", entry)
	}
}

func TestNewEntry_RejectsOutOfRangeRating(t *testing.T) {
	movie := omdb.Movie{ImdbID: "tt1", Title: "X"}
	for _, rating := range []int{0, -1, 11} {
		if _, err := NewEntry(movie, rating, 0); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("NewEntry(rating=%d) err = %v, want ErrInvalidRating", rating, err)
		}
	}
	for _, rating := range []int{MinRating, MaxRating} {
		if _, err := NewEntry(movie, rating, 0); err != nil {
			t.Fatalf("NewEntry(rating=%d) returned error: %v", rating, err)
		}
	}
}

func TestNewEntry_RequiresID(t *testing.T) {
	if _, err := NewEntry(omdb.Movie{Title: "X"}, 5, 0); err == nil {
		t.Fatalf("expected error for missing imdbID")
	}
}

func TestSummarize_EmptyIsZero(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.MeanImdbRating != 0 || s.MeanUserRating != 0 || s.MeanRuntime != 0 {
		t.Fatalf("Summarize(nil) = %#v, want zeros", s)
	}
	if math.IsNaN(s.MeanRuntime) {
		t.Fatalf("MeanRuntime is NaN")
	}
}

func TestSummarize_Means(t *testing.T) {
	s := Summarize([]Entry{
		{ImdbID: "a", ImdbRating: 8, UserRating: 10, Runtime: 100},
		{ImdbID: "b", ImdbRating: 6, UserRating: 5, Runtime: 150},
	})
	if s.Count != 2 {
		t.Fatalf("Count = %d, want 2", s.Count)
	}
	if s.MeanImdbRating != 7 || s.MeanUserRating != 7.5 || s.MeanRuntime != 125 {
		t.Fatalf("summary = %#v, want 7/7.5/125", s)
	}
}

func TestIndexOf(t *testing.T) {
	entries := []Entry{{ImdbID: "a"}, {ImdbID: "b"}}
	if IndexOf(entries, "b") != 1 || IndexOf(entries, "z") != -1 {
		t.Fatalf("IndexOf mismatch")
	}
}
