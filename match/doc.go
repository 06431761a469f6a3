// Package match pairs predicted items with reference items under a temporal
// tolerance: R-peaks against annotated beats, or predicted wave boundaries
// against annotated ones.
//
// Compatibility:
//
//	A predicted event p and a reference event r are compatible iff
//	|p - r| <= Tolerance (inclusive). Compatible pairs are found with an
//	interval tree of ±Tolerance windows around the references.
//
// Strategies (Options.Strategy):
//
//   - GlobalGreedy (default) — sort every compatible pair by (distance,
//     pred index, ref index) and accept a pair when both sides are still
//     free. A poor local match cannot block a closer one elsewhere.
//   - NearestFirst — each predicted item, in input order, takes its nearest
//     free reference (ties: lower ref index). Order-sensitive by design.
//   - Optimal — Kuhn–Munkres assignment per connected component: maximum
//     number of matches first, minimum total distance second.
//
// Interval modes (Options.Mode) for MatchIntervals:
//
//   - Boundary — onsets and offsets are matched as two independent event sets.
//   - Whole    — an interval pair is compatible only when both onset and
//     offset are within tolerance; its distance is |Δonset| + |Δoffset|.
//
// Every result is a partial injective relation: no predicted and no
// reference index appears in more than one Pair.
package match
