package extrema

import "errors"

// Sentinel errors for extremum search.
var (
	// ErrBadSeparation indicates MinSeparation < 1.
	ErrBadSeparation = errors.New("extrema: minimum separation must be at least 1")

	// ErrBadKind indicates an unknown Kind.
	ErrBadKind = errors.New("extrema: unknown extremum kind")

	// ErrBadEdgePolicy indicates an unknown EdgePolicy.
	ErrBadEdgePolicy = errors.New("extrema: unknown edge policy")

	// ErrNonFinite indicates a NaN or infinite sample or threshold.
	ErrNonFinite = errors.New("extrema: sequence contains NaN or Inf")
)

// Kind selects which extrema are reported.
type Kind int

const (
	// Maxima reports local maxima.
	Maxima Kind = iota
	// Minima reports local minima.
	Minima
	// Both reports maxima and minima; separation applies across both.
	Both
)

// EdgePolicy decides whether the first and last samples may qualify.
type EdgePolicy int

const (
	// ExcludeEdges never reports index 0 or n-1.
	ExcludeEdges EdgePolicy = iota
	// IncludeEdges lets a boundary sample qualify against its single neighbour.
	IncludeEdges
)

// Options configures Find.
//
//   - Kind          — Maxima (default), Minima or Both.
//   - MinSeparation — minimum index distance between reported extrema (>= 1).
//   - UseThreshold  — enable Threshold.
//   - Threshold     — maxima must be >= Threshold, minima <= Threshold.
//   - Edges         — ExcludeEdges (default) or IncludeEdges.
type Options struct {
	Kind          Kind
	MinSeparation int
	UseThreshold  bool
	Threshold     float64
	Edges         EdgePolicy
}

// DefaultOptions returns Maxima, MinSeparation=1, no threshold, edges excluded.
func DefaultOptions() Options {
	return Options{Kind: Maxima, MinSeparation: 1, Edges: ExcludeEdges}
}
