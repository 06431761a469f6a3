package match_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/ecgkit/interval"
	"github.com/katalvlaran/ecgkit/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategies = []match.Strategy{match.GlobalGreedy, match.NearestFirst, match.Optimal}

func withStrategy(tol float64, s match.Strategy) match.Options {
	opts := match.DefaultOptions(tol)
	opts.Strategy = s
	return opts
}

func TestMatchEvents_DetectionExample(t *testing.T) {
	for _, s := range strategies {
		res, err := match.MatchEvents([]float64{1.0, 5.0, 9.0}, []float64{1.1, 9.2}, withStrategy(0.5, s))
		require.NoError(t, err, s.String())
		assert.Equal(t, 2, res.TP(), s.String())
		assert.Equal(t, 1, res.FP(), s.String())
		assert.Equal(t, 0, res.FN(), s.String())
		assert.Equal(t, []int{1}, res.UnmatchedPred, s.String())
		require.Len(t, res.Pairs, 2)
		assert.Equal(t, 0, res.Pairs[0].Pred)
		assert.Equal(t, 2, res.Pairs[1].Pred)
		assert.InDelta(t, -0.1, res.Pairs[0].Error, 1e-12)
		assert.InDelta(t, -0.2, res.Pairs[1].Error, 1e-12)
	}
}

func TestMatchEvents_Empty(t *testing.T) {
	res, err := match.MatchEvents(nil, []float64{1, 2, 3}, match.DefaultOptions(0.1))
	require.NoError(t, err)
	assert.Equal(t, 0, res.TP())
	assert.Equal(t, 0, res.FP())
	assert.Equal(t, []int{0, 1, 2}, res.UnmatchedRef)
	assert.NotNil(t, res.Pairs, "empty results are non-nil")
	assert.NotNil(t, res.UnmatchedPred)

	res, err = match.MatchEvents(nil, nil, match.DefaultOptions(0.1))
	require.NoError(t, err)
	assert.Empty(t, res.Pairs)
	assert.Empty(t, res.UnmatchedRef)
}

func TestMatchEvents_ToleranceIsInclusive(t *testing.T) {
	res, err := match.MatchEvents([]float64{10}, []float64{12}, match.DefaultOptions(2))
	require.NoError(t, err)
	assert.Equal(t, 1, res.TP(), "distance equal to tolerance matches")

	res, err = match.MatchEvents([]float64{10}, []float64{12.0001}, match.DefaultOptions(2))
	require.NoError(t, err)
	assert.Equal(t, 0, res.TP())
}

func TestMatchEvents_GlobalGreedyBeatsNearestFirst(t *testing.T) {
	// pred[0] is processed first by NearestFirst and steals ref[0], which is
	// much closer to pred[1]; pred[1] has no other reference in range.
	pred := []float64{0.5, 1.0}
	ref := []float64{0.9, 0.0}

	nf, err := match.MatchEvents(pred, ref, withStrategy(0.6, match.NearestFirst))
	require.NoError(t, err)
	assert.Equal(t, 1, nf.TP())
	assert.Equal(t, []int{1}, nf.UnmatchedPred)

	gg, err := match.MatchEvents(pred, ref, withStrategy(0.6, match.GlobalGreedy))
	require.NoError(t, err)
	assert.Equal(t, 2, gg.TP())
	assert.Equal(t, []match.Pair{{Pred: 1, Ref: 0, Error: pred[1] - ref[0]}, {Pred: 0, Ref: 1, Error: pred[0] - ref[1]}}, gg.Pairs)
}

func TestMatchEvents_OptimalBeatsGlobalGreedy(t *testing.T) {
	// Greedy takes the closest pair (pred 0, ref 0) and strands pred 1.
	pred := []float64{1.0, 0.3}
	ref := []float64{0.9, 1.8}

	gg, err := match.MatchEvents(pred, ref, withStrategy(0.85, match.GlobalGreedy))
	require.NoError(t, err)
	assert.Equal(t, 1, gg.TP())

	opt, err := match.MatchEvents(pred, ref, withStrategy(0.85, match.Optimal))
	require.NoError(t, err)
	assert.Equal(t, 2, opt.TP())
	assert.Equal(t, 1, opt.Pairs[0].Pred, "ref 0 goes to pred 1")
	assert.Equal(t, 0, opt.Pairs[1].Pred, "ref 1 goes to pred 0")
}

func TestMatchEvents_TieBreakDeterminism(t *testing.T) {
	// Both predictions are exactly 1 away from the single reference.
	for _, s := range strategies {
		res, err := match.MatchEvents([]float64{1, 3}, []float64{2}, withStrategy(1, s))
		require.NoError(t, err)
		require.Len(t, res.Pairs, 1, s.String())
		assert.Equal(t, 0, res.Pairs[0].Pred, "%s: lower pred index wins a tie", s)
	}

	// Two references at equal distance from one prediction.
	for _, s := range strategies {
		res, err := match.MatchEvents([]float64{2}, []float64{3, 1}, withStrategy(1, s))
		require.NoError(t, err)
		require.Len(t, res.Pairs, 1, s.String())
		assert.Equal(t, 0, res.Pairs[0].Ref, "%s: lower ref index wins a tie", s)
	}

	// Repeated calls return the same result.
	r := rand.New(rand.NewSource(7))
	pred, ref := randomEvents(r, 40), randomEvents(r, 40)
	for _, s := range strategies {
		first, err := match.MatchEvents(pred, ref, withStrategy(3, s))
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := match.MatchEvents(pred, ref, withStrategy(3, s))
			require.NoError(t, err)
			assert.Equal(t, first, again, s.String())
		}
	}
}

func TestMatchEvents_GlobalGreedyIsOrderIndependent(t *testing.T) {
	// With distinct distances the matched value pairs do not depend on input order.
	r := rand.New(rand.NewSource(11))
	pred, ref := make([]float64, 30), make([]float64, 30)
	for i := range pred {
		pred[i], ref[i] = 300*r.Float64(), 300*r.Float64()
	}
	base, err := match.MatchEvents(pred, ref, match.DefaultOptions(2.5))
	require.NoError(t, err)

	perm := r.Perm(len(pred))
	shuffled := make([]float64, len(pred))
	for i, j := range perm {
		shuffled[i] = pred[j]
	}
	got, err := match.MatchEvents(shuffled, ref, match.DefaultOptions(2.5))
	require.NoError(t, err)

	type vp struct{ p, r float64 }
	collect := func(res match.Result, pv []float64) map[vp]bool {
		out := map[vp]bool{}
		for _, p := range res.Pairs {
			out[vp{pv[p.Pred], ref[p.Ref]}] = true
		}
		return out
	}
	assert.Equal(t, collect(base, pred), collect(got, shuffled))
}

func TestMatchEvents_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		pred, ref := randomEvents(r, r.Intn(30)), randomEvents(r, r.Intn(30))
		tol := 0.5 + 4*r.Float64()
		var greedyTP int
		for _, s := range strategies {
			res, err := match.MatchEvents(pred, ref, withStrategy(tol, s))
			require.NoError(t, err)
			assert.Equal(t, len(pred), res.TP()+res.FP(), s.String())
			assert.Equal(t, len(ref), res.TP()+res.FN(), s.String())

			seenP, seenR := map[int]bool{}, map[int]bool{}
			for k, p := range res.Pairs {
				assert.False(t, seenP[p.Pred], "pred %d matched twice", p.Pred)
				assert.False(t, seenR[p.Ref], "ref %d matched twice", p.Ref)
				seenP[p.Pred], seenR[p.Ref] = true, true
				assert.LessOrEqual(t, math.Abs(p.Error), tol)
				assert.Equal(t, pred[p.Pred]-ref[p.Ref], p.Error)
				if k > 0 {
					assert.Less(t, res.Pairs[k-1].Ref, p.Ref, "pairs ordered by ref")
				}
			}
			switch s {
			case match.GlobalGreedy:
				greedyTP = res.TP()
			case match.Optimal:
				assert.GreaterOrEqual(t, res.TP(), greedyTP)
			}
		}
	}
}

func TestMatchEvents_StrategiesAgreeOnIsolatedWindows(t *testing.T) {
	pred := []float64{0.1, 10.2, 19.7, 30.0, 45}
	ref := []float64{0, 10, 20, 40}
	var results []match.Result
	for _, s := range strategies {
		res, err := match.MatchEvents(pred, ref, withStrategy(0.5, s))
		require.NoError(t, err)
		results = append(results, res)
	}
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[0], results[2])
	assert.Equal(t, []int{3, 4}, results[0].UnmatchedPred)
	assert.Equal(t, []int{3}, results[0].UnmatchedRef)
}

func TestMatchEvents_OptimalAgainstBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for trial := 0; trial < 200; trial++ {
		pred := randomSmallEvents(r, r.Intn(6))
		ref := randomSmallEvents(r, r.Intn(6))
		tol := 1 + 2*r.Float64()

		res, err := match.MatchEvents(pred, ref, withStrategy(tol, match.Optimal))
		require.NoError(t, err)
		wantN, wantCost := bruteForce(pred, ref, tol)
		var cost float64
		for _, p := range res.Pairs {
			cost += math.Abs(p.Error)
		}
		require.Equal(t, wantN, res.TP(), "pred=%v ref=%v tol=%v", pred, ref, tol)
		assert.InDelta(t, wantCost, cost, 1e-9, "pred=%v ref=%v tol=%v", pred, ref, tol)
	}
}

func TestMatchEvents_Errors(t *testing.T) {
	_, err := match.MatchEvents([]float64{1}, []float64{1}, match.DefaultOptions(0))
	assert.ErrorIs(t, err, match.ErrBadTolerance)
	_, err = match.MatchEvents([]float64{1}, []float64{1}, match.DefaultOptions(math.NaN()))
	assert.ErrorIs(t, err, match.ErrBadTolerance)
	_, err = match.MatchEvents([]float64{1}, []float64{1}, match.DefaultOptions(math.Inf(1)))
	assert.ErrorIs(t, err, match.ErrBadTolerance)
	_, err = match.MatchEvents([]float64{1}, []float64{1}, withStrategy(1, match.Strategy(9)))
	assert.ErrorIs(t, err, match.ErrBadStrategy)
	_, err = match.MatchEvents([]float64{1, math.NaN()}, []float64{1}, match.DefaultOptions(1))
	assert.ErrorIs(t, err, match.ErrNonFinite)
	_, err = match.MatchEvents([]float64{1}, []float64{math.Inf(-1)}, match.DefaultOptions(1))
	assert.ErrorIs(t, err, match.ErrNonFinite)
}

func TestMatchIntervals_BoundaryExample(t *testing.T) {
	pred := []interval.Interval{{Start: 0, End: 2}}
	ref := []interval.Interval{{Start: 0.1, End: 2.1}}
	res, err := match.MatchIntervals(pred, ref, match.DefaultOptions(0.2))
	require.NoError(t, err)
	require.Len(t, res.Onset.Pairs, 1)
	require.Len(t, res.Offset.Pairs, 1)
	assert.InDelta(t, -0.1, res.Onset.Pairs[0].Error, 1e-12)
	assert.InDelta(t, -0.1, res.Offset.Pairs[0].Error, 1e-12)
}

func TestMatchIntervals_BoundaryVsWhole(t *testing.T) {
	// Onset agrees, offset is far off: Boundary matches the onset only,
	// Whole rejects the interval entirely.
	pred := []interval.Interval{{Start: 10, End: 20}}
	ref := []interval.Interval{{Start: 10.1, End: 25}}

	b, err := match.MatchIntervals(pred, ref, match.DefaultOptions(0.5))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Onset.TP())
	assert.Equal(t, 0, b.Offset.TP())

	opts := match.DefaultOptions(0.5)
	opts.Mode = match.Whole
	w, err := match.MatchIntervals(pred, ref, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Onset.TP())
	assert.Equal(t, 0, w.Offset.TP())
	assert.Equal(t, []int{0}, w.Onset.UnmatchedRef)
}

func TestMatchIntervals_WholeSharesPairing(t *testing.T) {
	pred := []interval.Interval{{Start: 0, End: 1}, {Start: 5, End: 6.2}}
	ref := []interval.Interval{{Start: 5.1, End: 6}, {Start: 0.2, End: 0.9}, {Start: 9, End: 10}}
	opts := match.DefaultOptions(0.3)
	opts.Mode = match.Whole

	res, err := match.MatchIntervals(pred, ref, opts)
	require.NoError(t, err)
	require.Len(t, res.Onset.Pairs, 2)
	for k := range res.Onset.Pairs {
		on, off := res.Onset.Pairs[k], res.Offset.Pairs[k]
		assert.Equal(t, on.Pred, off.Pred)
		assert.Equal(t, on.Ref, off.Ref)
		assert.InDelta(t, pred[on.Pred].Start-ref[on.Ref].Start, on.Error, 1e-12)
		assert.InDelta(t, pred[off.Pred].End-ref[off.Ref].End, off.Error, 1e-12)
	}
	assert.Equal(t, []int{2}, res.Onset.UnmatchedRef)
	assert.Equal(t, res.Onset.UnmatchedRef, res.Offset.UnmatchedRef)
}

func TestMatchIntervals_Errors(t *testing.T) {
	good := []interval.Interval{{Start: 0, End: 1}}
	_, err := match.MatchIntervals([]interval.Interval{{Start: 2, End: 1}}, good, match.DefaultOptions(1))
	assert.ErrorIs(t, err, interval.ErrInvalidInterval)
	_, err = match.MatchIntervals(good, []interval.Interval{{Start: 0, End: math.Inf(1)}}, match.DefaultOptions(1))
	assert.ErrorIs(t, err, match.ErrNonFinite)

	opts := match.DefaultOptions(1)
	opts.Mode = match.Mode(7)
	_, err = match.MatchIntervals(good, good, opts)
	assert.ErrorIs(t, err, match.ErrBadMode)
}

func TestParseStrategyAndMode(t *testing.T) {
	for _, s := range strategies {
		got, err := match.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := match.ParseStrategy("closest")
	assert.ErrorIs(t, err, match.ErrBadStrategy)

	for _, m := range []match.Mode{match.Boundary, match.Whole} {
		got, err := match.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err = match.ParseMode("pair")
	assert.ErrorIs(t, err, match.ErrBadMode)
}

// randomEvents returns n positions in [0, 10n) with two decimals.
func randomEvents(r *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round(r.Float64()*float64(10*n)*100) / 100
	}
	return out
}

func randomSmallEvents(r *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round(r.Float64()*800) / 100
	}
	return out
}

// bruteForce returns the maximum number of compatible pairs and the minimum
// total distance among matchings of that size.
func bruteForce(pred, ref []float64, tol float64) (int, float64) {
	bestN, bestCost := 0, 0.0
	used := make([]bool, len(ref))
	var rec func(i, n int, cost float64)
	rec = func(i, n int, cost float64) {
		if i == len(pred) {
			if n > bestN || (n == bestN && cost < bestCost) {
				bestN, bestCost = n, cost
			}
			return
		}
		rec(i+1, n, cost)
		for j, rv := range ref {
			d := math.Abs(pred[i] - rv)
			if used[j] || d > tol {
				continue
			}
			used[j] = true
			rec(i+1, n+1, cost+d)
			used[j] = false
		}
	}
	rec(0, 0, 0)
	return bestN, bestCost
}
