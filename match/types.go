package match

import "errors"

// Sentinel errors for matching.
var (
	// ErrBadTolerance indicates Tolerance <= 0, NaN or Inf.
	ErrBadTolerance = errors.New("match: tolerance must be a positive finite number")

	// ErrBadStrategy indicates an unknown Strategy.
	ErrBadStrategy = errors.New("match: unknown strategy")

	// ErrBadMode indicates an unknown Mode.
	ErrBadMode = errors.New("match: unknown interval mode")

	// ErrNonFinite indicates a NaN or infinite event position.
	ErrNonFinite = errors.New("match: event position is NaN or Inf")
)

// Strategy selects how conflicts between compatible pairs are resolved.
type Strategy int

const (
	// GlobalGreedy accepts pairs in increasing distance over all pairs.
	GlobalGreedy Strategy = iota
	// NearestFirst lets each predicted item, in input order, take its nearest free reference.
	NearestFirst
	// Optimal maximizes the number of matches, then minimizes total distance.
	Optimal
)

// String returns the strategy name used in configs and reports.
func (s Strategy) String() string {
	switch s {
	case GlobalGreedy:
		return "global-greedy"
	case NearestFirst:
		return "nearest-first"
	case Optimal:
		return "optimal"
	}
	return "unknown"
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{GlobalGreedy, NearestFirst, Optimal} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, ErrBadStrategy
}

// Mode selects how intervals are matched by MatchIntervals.
type Mode int

const (
	// Boundary matches onsets and offsets independently.
	Boundary Mode = iota
	// Whole requires both endpoints of one interval pair to be in tolerance.
	Whole
)

// String returns the mode name used in configs and reports.
func (m Mode) String() string {
	switch m {
	case Boundary:
		return "boundary"
	case Whole:
		return "whole"
	}
	return "unknown"
}

// ParseMode is the inverse of Mode.String.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "boundary":
		return Boundary, nil
	case "whole":
		return Whole, nil
	}
	return 0, ErrBadMode
}

// Options configures MatchEvents and MatchIntervals.
//
//   - Tolerance — maximum |pred - ref| for a match, in the caller's units (> 0).
//   - Strategy  — GlobalGreedy (default), NearestFirst or Optimal.
//   - Mode      — Boundary (default) or Whole; only used by MatchIntervals.
type Options struct {
	Tolerance float64
	Strategy  Strategy
	Mode      Mode
}

// DefaultOptions returns GlobalGreedy, Boundary mode and the given tolerance.
func DefaultOptions(tolerance float64) Options {
	return Options{Tolerance: tolerance, Strategy: GlobalGreedy, Mode: Boundary}
}

// Pair is one matched (predicted, reference) association.
// Error is the signed localization error pred - ref.
type Pair struct {
	Pred  int
	Ref   int
	Error float64
}

// Result holds the matching between a predicted and a reference list.
// Pairs are ordered by Ref; the unmatched lists are ascending.
type Result struct {
	Pairs         []Pair
	UnmatchedPred []int
	UnmatchedRef  []int
}

// TP returns the number of matched pairs.
func (r Result) TP() int { return len(r.Pairs) }

// FP returns the number of unmatched predicted items.
func (r Result) FP() int { return len(r.UnmatchedPred) }

// FN returns the number of unmatched reference items.
func (r Result) FN() int { return len(r.UnmatchedRef) }

// IntervalResult holds the onset and offset matchings of MatchIntervals.
// In Whole mode both share the same pairing and differ only in Error.
type IntervalResult struct {
	Onset  Result
	Offset Result
}
