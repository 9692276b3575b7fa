package omdb

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound is matched by every application-level failure the API reports
// with Response "False" (no results, unknown id, too many results).
var ErrNotFound = errors.New("movie not found")

// APIError carries the API's own error text for a Response "False" payload.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return "Movie not found"
	}
	return e.Message
}

// Is reports ErrNotFound equivalence for errors.Is.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound
}

// SearchResult is one row of a search response.
type SearchResult struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
}

// searchResponse mirrors GET ?s=<query>.
type searchResponse struct {
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
}

// Movie mirrors GET ?i=<id>. Numeric fields stay as the API's text; use the
// helper methods for parsed values.
type Movie struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
}

// RuntimeMinutes parses "<n> min" into n. Unparseable text ("N/A") yields 0.
func (m Movie) RuntimeMinutes() int {
	return ParseRuntime(m.Runtime)
}

// Rating parses imdbRating. "N/A" yields 0.
func (m Movie) Rating() float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(m.ImdbRating), 64)
	if err != nil {
		return 0
	}
	return value
}

// HasPoster reports whether the poster field holds a URL rather than "N/A".
func (m Movie) HasPoster() bool {
	p := strings.TrimSpace(m.Poster)
	return p != "" && !strings.EqualFold(p, "N/A")
}

// ParseRuntime returns the leading integer of a runtime string such as "155 min".
func ParseRuntime(text string) int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func isFalse(response string) bool {
	return strings.EqualFold(strings.TrimSpace(response), "false")
}
