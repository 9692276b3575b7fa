// Package watched defines the entries of the user's watched list and the
// summary statistics shown above it.
package watched

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/five82/popcorn/internal/omdb"
)

// ErrInvalidRating is returned when a user rating falls outside 1..10.
var ErrInvalidRating = errors.New("user rating must be between 1 and 10")

const (
	MinRating = 1
	MaxRating = 10
)

// Entry is one rated movie. The JSON layout is the persisted format.
type Entry struct {
	ImdbID          string  `json:"imdbID" validate:"required"`
	Title           string  `json:"title"`
	Year            string  `json:"year"`
	Poster          string  `json:"poster"`
	Runtime         int     `json:"runtime" validate:"gte=0"`
	ImdbRating      float64 `json:"imdbRating" validate:"gte=0,lte=10"`
	UserRating      int     `json:"userRating" validate:"gte=1,lte=10"`
	RatingDecisions int     `json:"countRatingDecisions" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewEntry builds an Entry from a loaded movie and the chosen rating.
// decisions counts how many times the rating changed before confirming.
func NewEntry(movie omdb.Movie, rating, decisions int) (Entry, error) {
	entry := Entry{
		ImdbID:          strings.TrimSpace(movie.ImdbID),
		Title:           movie.Title,
		Year:            movie.Year,
		Poster:          movie.Poster,
		Runtime:         movie.RuntimeMinutes(),
		ImdbRating:      movie.Rating(),
		UserRating:      rating,
		RatingDecisions: decisions,
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Validate checks field ranges. A bad user rating is reported as
// ErrInvalidRating.
func (e Entry) Validate() error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "UserRating" {
				return fmt.Errorf("%w: got %d", ErrInvalidRating, e.UserRating)
			}
		}
		fe := fieldErrs[0]
		return fmt.Errorf("invalid entry: %s failed %q", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("invalid entry: %w", err)
}

// Summary aggregates the watched list.
type Summary struct {
	Count          int
	MeanImdbRating float64
	MeanUserRating float64
	MeanRuntime    float64
}

// Summarize computes the means over entries. Every mean of an empty list is 0.
func Summarize(entries []Entry) Summary {
	s := Summary{Count: len(entries)}
	if len(entries) == 0 {
		return s
	}
	var imdb, user, runtime float64
	for _, e := range entries {
		imdb += e.ImdbRating
		user += float64(e.UserRating)
		runtime += float64(e.Runtime)
	}
	n := float64(len(entries))
	s.MeanImdbRating = imdb / n
	s.MeanUserRating = user / n
	s.MeanRuntime = runtime / n
	return s
}

// IndexOf returns the position of id in entries or -1.
func IndexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ImdbID == id {
			return i
		}
	}
	return -1
}
