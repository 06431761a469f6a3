package covering

import (
	"errors"

	"github.com/katalvlaran/ecgkit/interval"
)

// Sentinel errors returned by the covering solvers.
var (
	// ErrNoCovering indicates the candidates leave part of the target uncovered.
	ErrNoCovering = errors.New("covering: candidates cannot cover the target")

	// ErrMissingWeight indicates Weighted mode without a Weight function.
	ErrMissingWeight = errors.New("covering: weighted mode requires a weight function")

	// ErrBadWeight indicates a negative, NaN or infinite candidate weight.
	ErrBadWeight = errors.New("covering: weights must be finite and non-negative")

	// ErrBadMode indicates an unknown Mode value.
	ErrBadMode = errors.New("covering: unknown mode")
)

// Mode selects the objective of MaxDisjointCovering.
type Mode int

const (
	// Unweighted maximizes the number of selected candidates.
	Unweighted Mode = iota

	// Weighted maximizes the total weight of selected candidates.
	Weighted
)

// WeightFunc returns the weight of the candidate at position i.
type WeightFunc func(i int, iv interval.Interval) float64

// Options configures MaxDisjointCovering.
//
//   - Mode           — Unweighted (default) or Weighted.
//   - Weight         — required in Weighted mode, ignored otherwise.
//   - AllowBookended — when true (default) touching candidates ([0,2), [2,4))
//     count as disjoint; when false they conflict.
type Options struct {
	Mode           Mode
	Weight         WeightFunc
	AllowBookended bool
}

// DefaultOptions returns Unweighted mode with bookended candidates allowed.
func DefaultOptions() Options {
	return Options{Mode: Unweighted, AllowBookended: true}
}

// Result is a selected subset of candidates, ordered by ascending Start
// (ties by position).
//
//   - Indices   — positions in the caller's candidate slice.
//   - Intervals — the selected candidates, parallel to Indices.
//   - Weight    — total weight (Weighted mode) or the count (Unweighted).
type Result struct {
	Indices   []int
	Intervals []interval.Interval
	Weight    float64
}

// Len returns the number of selected candidates.
func (r Result) Len() int { return len(r.Indices) }
