package metrics

import (
	"encoding/json"
	"math"
)

// Summary is a streaming mean and population standard deviation
// (Welford's update). The zero value is an empty summary.
type Summary struct {
	n    int
	mean float64
	m2   float64
}

// Add accumulates x.
func (s *Summary) Add(x float64) {
	s.n++
	d := x - s.mean
	s.mean += d / float64(s.n)
	s.m2 += d * (x - s.mean)
}

// Merge folds o into s (Chan et al. pairwise combination).
func (s *Summary) Merge(o Summary) {
	if o.n == 0 {
		return
	}
	if s.n == 0 {
		*s = o
		return
	}
	n := s.n + o.n
	d := o.mean - s.mean
	s.mean += d * float64(o.n) / float64(n)
	s.m2 += o.m2 + d*d*float64(s.n)*float64(o.n)/float64(n)
	s.n = n
}

// N returns the number of accumulated samples.
func (s Summary) N() int { return s.n }

// Mean returns the sample mean, 0 when N() == 0.
func (s Summary) Mean() float64 { return s.mean }

// StdDev returns the population standard deviation, 0 when N() < 2.
func (s Summary) StdDev() float64 {
	if s.n < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.n))
}

// summaryOf accumulates xs in order.
func summaryOf(xs []float64) Summary {
	var s Summary
	for _, x := range xs {
		s.Add(x)
	}
	return s
}

// MarshalJSON encodes {"n", "mean", "std"}; mean and std are null when empty.
func (s Summary) MarshalJSON() ([]byte, error) {
	out := struct {
		N    int      `json:"n"`
		Mean *float64 `json:"mean"`
		Std  *float64 `json:"std"`
	}{N: s.n}
	if s.n > 0 {
		mean, std := s.Mean(), s.StdDev()
		out.Mean, out.Std = &mean, &std
	}
	return json.Marshal(out)
}
