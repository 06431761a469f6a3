package extrema

import (
	"iter"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Find validates xs and opts and returns a lazy Sequence of extremum indices.
// xs is copied; later changes by the caller do not affect the Sequence.
//
// Errors:
//   - ErrBadSeparation, ErrBadKind, ErrBadEdgePolicy for bad options.
//   - ErrNonFinite if a sample or the active threshold is NaN/Inf.
func Find(xs []float64, opts Options) (*Sequence, error) {
	if opts.MinSeparation < 1 {
		return nil, ErrBadSeparation
	}
	if opts.Kind < Maxima || opts.Kind > Both {
		return nil, ErrBadKind
	}
	if opts.Edges != ExcludeEdges && opts.Edges != IncludeEdges {
		return nil, ErrBadEdgePolicy
	}
	if opts.UseThreshold && !finite(opts.Threshold) {
		return nil, ErrNonFinite
	}
	for _, x := range xs {
		if !finite(x) {
			return nil, ErrNonFinite
		}
	}

	return &Sequence{xs: append([]float64(nil), xs...), opts: opts}, nil
}

// FindAll is Find followed by Collect.
func FindAll(xs []float64, opts Options) ([]int, error) {
	seq, err := Find(xs, opts)
	if err != nil {
		return nil, err
	}

	return seq.Collect(), nil
}

// Sequence yields extremum indices in ascending order. It is consumed as it
// is read and cannot be restarted. A Sequence is not safe for concurrent use.
type Sequence struct {
	xs     []float64
	opts   Options
	picked []int
	pos    int
	ready  bool
}

// Next returns the next index, or false once the sequence is exhausted.
func (s *Sequence) Next() (int, bool) {
	if !s.ready {
		s.picked = selectExtrema(s.xs, s.opts)
		s.xs = nil
		s.ready = true
	}
	if s.pos >= len(s.picked) {
		return 0, false
	}
	i := s.picked[s.pos]
	s.pos++

	return i, true
}

// All returns an iterator over the remaining indices. Breaking out of the
// loop consumes the index that was last yielded.
func (s *Sequence) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for {
			i, ok := s.Next()
			if !ok || !yield(i) {
				return
			}
		}
	}
}

// Collect drains the remaining indices into a slice (never nil).
func (s *Sequence) Collect() []int {
	out := []int{}
	for i := range s.All() {
		out = append(out, i)
	}

	return out
}

// candidate is one local extremum before separation filtering.
type candidate struct {
	index int
	score float64 // signed deviation from the mean; larger is more extreme
}

// selectExtrema runs the candidate scan and the separation filter.
func selectExtrema(xs []float64, opts Options) []int {
	if len(xs) < 2 {
		return nil
	}
	mean := stat.Mean(xs, nil)
	edges := opts.Edges == IncludeEdges

	var cands []candidate
	if opts.Kind == Maxima || opts.Kind == Both {
		for _, i := range plateauPeaks(xs, 1, edges) {
			if opts.UseThreshold && xs[i] < opts.Threshold {
				continue
			}
			cands = append(cands, candidate{index: i, score: xs[i] - mean})
		}
	}
	if opts.Kind == Minima || opts.Kind == Both {
		for _, i := range plateauPeaks(xs, -1, edges) {
			if opts.UseThreshold && xs[i] > opts.Threshold {
				continue
			}
			cands = append(cands, candidate{index: i, score: mean - xs[i]})
		}
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].index < cands[b].index })

	return separate(cands, opts.MinSeparation)
}

// plateauPeaks returns the first index of every plateau of sign*xs whose
// neighbours are strictly lower. A missing neighbour counts as lower only
// when edges is true; a plateau spanning the whole sequence never qualifies.
func plateauPeaks(xs []float64, sign float64, edges bool) []int {
	n := len(xs)
	var out []int
	for i := 0; i < n; {
		j := i
		for j+1 < n && xs[j+1] == xs[i] {
			j++
		}
		v := sign * xs[i]
		left := edges
		if i > 0 {
			left = sign*xs[i-1] < v
		}
		right := edges
		if j < n-1 {
			right = sign*xs[j+1] < v
		}
		if left && right && !(i == 0 && j == n-1) {
			out = append(out, i)
		}
		i = j + 1
	}

	return out
}

// separate keeps candidates in priority order (score desc, index asc) and
// drops every candidate closer than minSep to a kept one. cands must be
// sorted by index; the result is ascending.
func separate(cands []candidate, minSep int) []int {
	k := len(cands)
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cands[order[a]].score > cands[order[b]].score
	})

	keep := make([]bool, k)
	dropped := make([]bool, k)
	for _, c := range order {
		if dropped[c] {
			continue
		}
		keep[c] = true
		for j := c - 1; j >= 0 && cands[c].index-cands[j].index < minSep; j-- {
			dropped[j] = true
		}
		for j := c + 1; j < k && cands[j].index-cands[c].index < minSep; j++ {
			dropped[j] = true
		}
	}

	out := make([]int, 0, k)
	for i, c := range cands {
		if keep[i] {
			out = append(out, c.index)
		}
	}

	return out
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
