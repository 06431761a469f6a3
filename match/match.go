package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ecgkit/interval"
)

// MatchEvents pairs predicted event positions with reference positions.
// Both lists may be empty and need not be sorted; indices in the Result
// refer to the input order.
//
// Errors:
//   - ErrBadTolerance if opts.Tolerance is not a positive finite number.
//   - ErrBadStrategy for an unknown Strategy.
//   - ErrNonFinite if any position is NaN or ±Inf (wrapped with its position).
//
// Complexity: O((P+R) log R + E log E) for GlobalGreedy, where E is the
// number of compatible pairs.
func MatchEvents(pred, ref []float64, opts Options) (Result, error) {
	if err := validateOptions(opts, false); err != nil {
		return Result{}, err
	}
	if err := checkFinite("pred", pred); err != nil {
		return Result{}, err
	}
	if err := checkFinite("ref", ref); err != nil {
		return Result{}, err
	}

	edges, err := eventEdges(pred, ref, opts.Tolerance)
	if err != nil {
		return Result{}, err
	}
	chosen := resolve(opts.Strategy, edges, len(pred), len(ref))

	return buildResult(chosen, len(pred), len(ref), func(e edge) float64 {
		return pred[e.pred] - ref[e.ref]
	}), nil
}

// MatchIntervals pairs predicted intervals with reference intervals.
//
// In Boundary mode onsets and offsets are matched independently with
// MatchEvents semantics. In Whole mode one pairing is computed on whole
// intervals and reported twice, with onset and offset errors respectively.
//
// Errors: as MatchEvents, plus ErrBadMode and interval.ErrInvalidInterval
// for a reversed interval (wrapped with its position).
func MatchIntervals(pred, ref []interval.Interval, opts Options) (IntervalResult, error) {
	if err := validateOptions(opts, true); err != nil {
		return IntervalResult{}, err
	}
	if err := checkIntervals("pred", pred); err != nil {
		return IntervalResult{}, err
	}
	if err := checkIntervals("ref", ref); err != nil {
		return IntervalResult{}, err
	}

	if opts.Mode == Boundary {
		onset, err := MatchEvents(starts(pred), starts(ref), opts)
		if err != nil {
			return IntervalResult{}, err
		}
		offset, err := MatchEvents(ends(pred), ends(ref), opts)
		if err != nil {
			return IntervalResult{}, err
		}
		return IntervalResult{Onset: onset, Offset: offset}, nil
	}

	edges, err := intervalEdges(pred, ref, opts.Tolerance)
	if err != nil {
		return IntervalResult{}, err
	}
	chosen := resolve(opts.Strategy, edges, len(pred), len(ref))

	return IntervalResult{
		Onset: buildResult(chosen, len(pred), len(ref), func(e edge) float64 {
			return pred[e.pred].Start - ref[e.ref].Start
		}),
		Offset: buildResult(chosen, len(pred), len(ref), func(e edge) float64 {
			return pred[e.pred].End - ref[e.ref].End
		}),
	}, nil
}

// Errors returns the signed localization errors of r's pairs, in Pair order.
func (r Result) Errors() []float64 {
	out := make([]float64, len(r.Pairs))
	for i, p := range r.Pairs {
		out[i] = p.Error
	}
	return out
}

func validateOptions(opts Options, intervals bool) error {
	tol := opts.Tolerance
	if !(tol > 0) || math.IsInf(tol, 0) {
		return ErrBadTolerance
	}
	switch opts.Strategy {
	case GlobalGreedy, NearestFirst, Optimal:
	default:
		return ErrBadStrategy
	}
	if intervals && opts.Mode != Boundary && opts.Mode != Whole {
		return ErrBadMode
	}

	return nil
}

func checkFinite(side string, xs []float64) error {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s[%d] = %v: %w", side, i, x, ErrNonFinite)
		}
	}
	return nil
}

func checkIntervals(side string, ivs []interval.Interval) error {
	for i, iv := range ivs {
		if math.IsInf(iv.Start, 0) || math.IsInf(iv.End, 0) {
			return fmt.Errorf("%s[%d] %v: %w", side, i, iv, ErrNonFinite)
		}
		if err := interval.Validate(iv); err != nil {
			return fmt.Errorf("%s[%d] %v: %w", side, i, iv, err)
		}
	}
	return nil
}

// buildResult turns a conflict-free edge set into a Result.
func buildResult(chosen []edge, nPred, nRef int, errorOf func(edge) float64) Result {
	pairs := make([]Pair, 0, len(chosen))
	matchedPred := make([]bool, nPred)
	matchedRef := make([]bool, nRef)
	for _, e := range chosen {
		pairs = append(pairs, Pair{Pred: e.pred, Ref: e.ref, Error: errorOf(e)})
		matchedPred[e.pred] = true
		matchedRef[e.ref] = true
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Ref < pairs[b].Ref })

	return Result{
		Pairs:         pairs,
		UnmatchedPred: unmatched(matchedPred),
		UnmatchedRef:  unmatched(matchedRef),
	}
}

func unmatched(matched []bool) []int {
	out := make([]int, 0)
	for i, ok := range matched {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}
