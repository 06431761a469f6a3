package match

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ecgkit/interval"
)

// edge is one compatible (pred, ref) pair of the bipartite graph.
type edge struct {
	pred, ref int
	dist      float64
}

// lessEdge orders edges by (dist, pred, ref).
func lessEdge(a, b edge) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.pred != b.pred {
		return a.pred < b.pred
	}
	return a.ref < b.ref
}

// windowSlack widens tree windows so rounding in r±tol never hides a pair
// with |p-r| <= tol; the exact test runs after the query.
func windowSlack(center, tol float64) float64 {
	return 1e-9 * max(1, math.Abs(center), tol)
}

// referenceIndex indexes the ±tol window around every reference position.
func referenceIndex(centers []float64, tol float64) (*interval.Index, error) {
	windows := make([]interval.Interval, len(centers))
	for i, c := range centers {
		slack := windowSlack(c, tol)
		windows[i] = interval.Interval{Start: c - tol - slack, End: c + tol + slack}
	}
	idx, err := interval.NewIndex(windows)
	if err != nil {
		return nil, fmt.Errorf("match: reference windows: %w", err)
	}

	return idx, nil
}

// eventEdges returns every pair with |pred[i] - ref[j]| <= tol.
func eventEdges(pred, ref []float64, tol float64) ([]edge, error) {
	idx, err := referenceIndex(ref, tol)
	if err != nil {
		return nil, err
	}
	var edges []edge
	for i, p := range pred {
		for _, j := range idx.Stab(p) {
			if d := math.Abs(p - ref[j]); d <= tol {
				edges = append(edges, edge{pred: i, ref: j, dist: d})
			}
		}
	}

	return edges, nil
}

// intervalEdges returns every pair whose onsets and offsets are both within
// tol. The distance is |Δonset| + |Δoffset|.
func intervalEdges(pred, ref []interval.Interval, tol float64) ([]edge, error) {
	idx, err := referenceIndex(starts(ref), tol)
	if err != nil {
		return nil, err
	}
	var edges []edge
	for i, p := range pred {
		for _, j := range idx.Stab(p.Start) {
			ds := math.Abs(p.Start - ref[j].Start)
			de := math.Abs(p.End - ref[j].End)
			if ds <= tol && de <= tol {
				edges = append(edges, edge{pred: i, ref: j, dist: ds + de})
			}
		}
	}

	return edges, nil
}

func starts(ivs []interval.Interval) []float64 {
	out := make([]float64, len(ivs))
	for i, iv := range ivs {
		out[i] = iv.Start
	}
	return out
}

func ends(ivs []interval.Interval) []float64 {
	out := make([]float64, len(ivs))
	for i, iv := range ivs {
		out[i] = iv.End
	}
	return out
}
