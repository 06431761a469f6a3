package covering

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/ecgkit/interval"
)

// OptimalCovering returns a minimum-cardinality subset of candidates whose
// union contains target.
//
// Algorithm (greedy frontier cover):
//  1. Keep candidates that overlap target (interval tree query).
//  2. Sort them by Start; ties keep ascending position.
//  3. frontier = target.Start. While frontier < target.End, take the
//     candidate with Start <= frontier and the largest End (ties: earliest
//     Start, then lowest position) and move frontier to its End.
//  4. If no candidate pushes the frontier forward, fail with ErrNoCovering.
//
// An empty target is covered by the empty subset.
//
// Errors:
//   - ErrInvalidInterval (package interval) for a malformed target or candidate.
//   - ErrNoCovering when a gap remains; no partial result is returned.
//
// Complexity: O(n log n).
func OptimalCovering(target interval.Interval, candidates []interval.Interval) (Result, error) {
	if err := interval.Validate(target); err != nil {
		return Result{}, fmt.Errorf("covering: target %v: %w", target, err)
	}
	idx, err := interval.NewIndex(candidates)
	if err != nil {
		return Result{}, fmt.Errorf("covering: %w", err)
	}
	if target.Empty() {
		return newResult(candidates, nil, 0), nil
	}

	pool := idx.Overlapping(target)
	sort.SliceStable(pool, func(a, b int) bool {
		return candidates[pool[a]].Start < candidates[pool[b]].Start
	})

	var chosen []int
	frontier := target.Start
	next := 0
	for frontier < target.End {
		best := -1
		for next < len(pool) && candidates[pool[next]].Start <= frontier {
			if c := pool[next]; best < 0 || reachesFurther(candidates[c], candidates[best]) {
				best = c
			}
			next++
		}
		if best < 0 || candidates[best].End <= frontier {
			return Result{}, fmt.Errorf("covering: gap at %g in %v: %w", frontier, target, ErrNoCovering)
		}
		chosen = append(chosen, best)
		frontier = candidates[best].End
	}

	return newResult(candidates, chosen, float64(len(chosen))), nil
}

// reachesFurther orders frontier candidates: larger End first, then earlier Start.
func reachesFurther(a, b interval.Interval) bool {
	if a.End != b.End {
		return a.End > b.End
	}
	return a.Start < b.Start
}

// newResult materializes the selected positions in ascending Start order.
func newResult(candidates []interval.Interval, chosen []int, weight float64) Result {
	sort.SliceStable(chosen, func(a, b int) bool {
		ca, cb := candidates[chosen[a]], candidates[chosen[b]]
		if ca.Start != cb.Start {
			return ca.Start < cb.Start
		}
		return chosen[a] < chosen[b]
	})
	res := Result{
		Indices:   make([]int, len(chosen)),
		Intervals: make([]interval.Interval, len(chosen)),
		Weight:    weight,
	}
	for i, p := range chosen {
		res.Indices[i] = p
		res.Intervals[i] = candidates[p]
	}

	return res
}
