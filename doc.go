// Package ecgkit is a numeric kernel for evaluating ECG detectors and
// delineators: interval sets, covering problems, extremum search and
// tolerance-window matching with detection and delineation scores.
//
// 🚀 What is ecgkit?
//
//	A pure-Go, deterministic toolkit that brings together:
//		• Interval model & algebra: normalize, union, intersection,
//		  complement and an interval-tree index
//		• Covering: minimum-cardinality cover of a span, maximum
//		  (weighted) set of pairwise disjoint windows
//		• Extrema: local maxima/minima with minimum separation and a
//		  value threshold, produced lazily
//		• Matching: predicted vs. reference events and wave boundaries
//		  under a tolerance (global greedy, nearest-first, optimal)
//		• Metrics: sensitivity, precision, F1, boundary error statistics,
//		  confusion matrices, top-n accuracy, CPSC2019 QRS score
//
// ✨ Why choose ecgkit?
//
//   - Exact edge cases – half-open intervals, inclusive tolerances,
//     explicit "undefined" rates instead of NaN
//   - Deterministic – every tie has a documented winner
//   - Safe for concurrent use – pure functions over immutable inputs
//
// Packages:
//
//	interval/ — Interval, Generalized, algebra, Index (interval tree)
//	covering/ — OptimalCovering, MaxDisjointCovering
//	extrema/  — Find, Sequence
//	match/    — MatchEvents, MatchIntervals
//	metrics/  — detection, delineation, classification and QRS scoring
//	cmd/ecgeval — command-line scorer for JSON record files
//
// ⚙️ Usage
//
//	rep, err := metrics.ScoreDetection(predicted, annotated, match.DefaultOptions(0.075))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(rep.Count, rep.Sensitivity(), rep.Precision())
package ecgkit
