package covering

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ecgkit/interval"
)

// MaxDisjointCovering selects a maximum subset of pairwise non-overlapping
// candidates.
//
// Unweighted mode (activity selection):
//  1. Drop empty candidates; sort the rest by (End, Start, position).
//  2. Accept a candidate when it starts at or after the last accepted End
//     (strictly after when opts.AllowBookended is false).
//
// Weighted mode (weighted interval scheduling):
//  1. Same ordering; p(k) = number of candidates ending at or before the start
//     of candidate k, found by binary search.
//  2. best[k+1] = max(best[k], w(k) + best[p(k)]); inclusion only on strict
//     improvement. Trace back from best[n].
//  3. When every weight is equal the unweighted greedy is used, so uniform
//     weights select exactly the unweighted subset.
//
// Errors:
//   - ErrBadMode, ErrMissingWeight, ErrBadWeight for bad options.
//   - ErrInvalidInterval (package interval) for a malformed candidate.
//
// Complexity: O(n log n).
func MaxDisjointCovering(candidates []interval.Interval, opts Options) (Result, error) {
	if opts.Mode != Unweighted && opts.Mode != Weighted {
		return Result{}, ErrBadMode
	}
	if opts.Mode == Weighted && opts.Weight == nil {
		return Result{}, ErrMissingWeight
	}

	pool := make([]int, 0, len(candidates))
	for i, iv := range candidates {
		if err := interval.Validate(iv); err != nil {
			return Result{}, fmt.Errorf("covering: candidate %d %v: %w", i, iv, err)
		}
		if !iv.Empty() {
			pool = append(pool, i)
		}
	}
	sort.Slice(pool, func(a, b int) bool {
		ca, cb := candidates[pool[a]], candidates[pool[b]]
		if ca.End != cb.End {
			return ca.End < cb.End
		}
		if ca.Start != cb.Start {
			return ca.Start < cb.Start
		}
		return pool[a] < pool[b]
	})

	if opts.Mode == Unweighted {
		chosen := selectGreedy(candidates, pool, opts.AllowBookended)
		return newResult(candidates, chosen, float64(len(chosen))), nil
	}

	weights := make([]float64, len(pool))
	uniform := true
	for k, p := range pool {
		w := opts.Weight(p, candidates[p])
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return Result{}, fmt.Errorf("covering: weight %g of candidate %d: %w", w, p, ErrBadWeight)
		}
		weights[k] = w
		uniform = uniform && w == weights[0]
	}
	if uniform {
		chosen := selectGreedy(candidates, pool, opts.AllowBookended)
		total := 0.0
		if len(weights) > 0 {
			total = weights[0] * float64(len(chosen))
		}
		return newResult(candidates, chosen, total), nil
	}

	chosen, total := selectWeighted(candidates, pool, weights, opts.AllowBookended)
	return newResult(candidates, chosen, total), nil
}

// compatible reports whether a candidate starting at start may follow one
// ending at end.
func compatible(end, start float64, allowBookended bool) bool {
	if allowBookended {
		return end <= start
	}
	return end < start
}

// selectGreedy runs activity selection over pool, which is sorted by End.
func selectGreedy(candidates []interval.Interval, pool []int, allowBookended bool) []int {
	var chosen []int
	lastEnd := math.Inf(-1)
	for _, p := range pool {
		iv := candidates[p]
		if len(chosen) > 0 && !compatible(lastEnd, iv.Start, allowBookended) {
			continue
		}
		chosen = append(chosen, p)
		lastEnd = iv.End
	}

	return chosen
}

// selectWeighted runs the weighted-interval-scheduling DP over pool (sorted
// by End) and returns the chosen positions and their total weight.
func selectWeighted(candidates []interval.Interval, pool []int, weights []float64, allowBookended bool) ([]int, float64) {
	n := len(pool)
	ends := make([]float64, n)
	for k, p := range pool {
		ends[k] = candidates[p].End
	}

	pred := make([]int, n)
	for k, p := range pool {
		start := candidates[p].Start
		pred[k] = sort.Search(n, func(j int) bool { return !compatible(ends[j], start, allowBookended) })
	}

	best := make([]float64, n+1)
	take := make([]bool, n)
	for k := 0; k < n; k++ {
		with := weights[k] + best[pred[k]]
		if with > best[k] {
			best[k+1] = with
			take[k] = true
		} else {
			best[k+1] = best[k]
		}
	}

	var chosen []int
	for k := n; k > 0; {
		if take[k-1] {
			chosen = append(chosen, pool[k-1])
			k = pred[k-1]
			continue
		}
		k--
	}

	return chosen, best[n]
}
