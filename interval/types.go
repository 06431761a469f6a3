package interval

import "fmt"

// DefaultJoinGap merges only overlapping or touching members during Normalize.
const DefaultJoinGap = 0.0

// Interval is the half-open range [Start, End).
// Start == End denotes an empty interval; it has zero length everywhere.
type Interval struct {
	Start float64
	End   float64
}

// Len returns End - Start.
func (iv Interval) Len() float64 { return iv.End - iv.Start }

// Empty reports whether the interval has zero length.
func (iv Interval) Empty() bool { return iv.Start >= iv.End }

// String renders the interval as "[start,end)".
func (iv Interval) String() string { return fmt.Sprintf("[%g,%g)", iv.Start, iv.End) }

// Generalized is an ordered sequence of Intervals. Results of this package are
// always normalized; inputs may be raw (unsorted, overlapping).
type Generalized []Interval

// Clone returns a copy that does not share the backing array with g.
func (g Generalized) Clone() Generalized {
	if g == nil {
		return nil
	}
	out := make(Generalized, len(g))
	copy(out, g)

	return out
}
