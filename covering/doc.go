// Package covering solves the two classic covering problems over candidate
// intervals.
//
// Problems:
//
//	OptimalCovering      — minimum number of candidates whose union contains
//	                       a target span (greedy frontier cover).
//	MaxDisjointCovering  — maximum number (or total weight) of pairwise
//	                       non-overlapping candidates (activity selection,
//	                       or a DP with binary-searched predecessors).
//
// Tie-breaks are fixed and documented so identical inputs always yield the
// identical subset:
//
//   - OptimalCovering picks the largest End; ties go to the earliest Start,
//     then to the lowest candidate position.
//   - MaxDisjointCovering sorts by (End, Start, position) and accepts greedily.
//     The weighted DP prefers exclusion when including a candidate does not
//     strictly improve the total.
//
// A covering that cannot reach the target is an error (ErrNoCovering); a
// truncated covering is never returned.
//
// Complexity:
//
//   - OptimalCovering:          O(n log n)
//   - MaxDisjointCovering:      O(n log n) both modes
package covering
