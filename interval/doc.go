// Package interval implements half-open intervals and "generalized intervals"
// (ordered, disjoint unions of intervals) together with the set algebra used
// by the covering solver and the event/interval scorer.
//
// 🚀 What is a generalized interval?
//
//	A plain Interval is a contiguous range [Start, End). A Generalized interval
//	is a sequence of Intervals. Any sequence is accepted as input ("raw" form);
//	every result returned by this package is "normalized":
//	  • sorted ascending by Start
//	  • pairwise disjoint, touching members merged ([0,2) ∪ [2,3) = [0,3))
//	  • no empty members (Start == End has zero length and is dropped)
//
// ✨ Key features:
//   - Normalize with a caller-supplied join gap
//   - Union, Intersection (two-pointer sweep), Complement within a bound
//   - Half-open and closed point membership
//   - Index: interval tree (biogo/store) for overlap and stabbing queries
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/ecgkit/interval"
//
//	qrs := interval.Generalized{{Start: 120, End: 160}, {Start: 40, End: 80}}
//	norm, err := interval.Normalize(qrs, interval.DefaultJoinGap)
//	gaps, err := interval.Complement(norm, interval.Interval{Start: 0, End: 500})
//
// Determinism:
//
//	All operations are pure and produce identical output for any ordering of
//	the input members. Inputs are never mutated.
//
// Complexity:
//
//   - Normalize / Union:  O(n log n)
//   - Intersection:       O(n log n + m log m) (normalization) + O(n+m) sweep
//   - Complement:         O(n log n)
package interval
