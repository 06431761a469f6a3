package interval

import "math"

// Validate reports ErrInvalidInterval when iv.Start > iv.End or either
// endpoint is NaN. Infinite endpoints are allowed.
func Validate(iv Interval) error {
	if math.IsNaN(iv.Start) || math.IsNaN(iv.End) || iv.Start > iv.End {
		return ErrInvalidInterval
	}

	return nil
}

// Len returns the length of iv. Malformed intervals are the caller's problem;
// use Validate first when the input is untrusted.
func Len(iv Interval) float64 { return iv.Len() }

// Contains reports whether x lies in the half-open interval: Start <= x < End.
// A point exactly at End is not contained.
func Contains(x float64, iv Interval) bool {
	return iv.Start <= x && x < iv.End
}

// ContainsClosed reports whether x lies in [Start, End], both ends inclusive.
// Use it when reference annotations are stored as closed-closed ranges.
func ContainsClosed(x float64, iv Interval) bool {
	return iv.Start <= x && x <= iv.End
}

// Overlaps reports whether a and b share a range of positive length.
// Touching intervals ([0,2) and [2,3)) do not overlap; empty intervals never
// overlap anything.
func Overlaps(a, b Interval) bool {
	if a.Empty() || b.Empty() {
		return false
	}

	return a.Start < b.End && b.Start < a.End
}

// Intersect returns a ∩ b and whether it is non-empty.
func Intersect(a, b Interval) (Interval, bool) {
	lo := max(a.Start, b.Start)
	hi := min(a.End, b.End)
	if lo >= hi {
		return Interval{}, false
	}

	return Interval{Start: lo, End: hi}, true
}
