package detail

import "github.com/five82/popcorn/internal/watched"

// Rating is the unconfirmed user rating on an open detail view.
type Rating struct {
	value     int
	decisions int
}

// Set changes the rating. Every change to a nonzero value counts as one
// decision. Values outside 0..10 are ignored.
func (r *Rating) Set(n int) {
	if n < 0 || n > watched.MaxRating || n == r.value {
		return
	}
	r.value = n
	if n > 0 {
		r.decisions++
	}
}

// Step moves the rating by delta within 1..10.
func (r *Rating) Step(delta int) {
	next := r.value + delta
	if next < watched.MinRating {
		next = watched.MinRating
	}
	if next > watched.MaxRating {
		next = watched.MaxRating
	}
	r.Set(next)
}

// Value is the current rating, 0 when none was chosen.
func (r Rating) Value() int {
	return r.value
}

// Decisions counts rating changes so far.
func (r Rating) Decisions() int {
	return r.decisions
}

// CanConfirm reports whether the rating may be added to the watched list.
func (r Rating) CanConfirm() bool {
	return r.value >= watched.MinRating
}

// Reset clears the rating and the decision count.
func (r *Rating) Reset() {
	*r = Rating{}
}
