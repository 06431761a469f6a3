package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CI is a confidence interval of a mean.
type CI struct {
	Mean  float64 `json:"mean"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ConfidenceInterval returns the normal-approximation confidence interval
// of the mean of data at the given level, e.g. 0.95:
// mean ± z·s/√n with s the sample standard deviation and z the standard
// normal quantile at (1 + confidence) / 2.
//
// Errors: ErrBadConfidence, ErrTooFewSamples, ErrNonFinite.
func ConfidenceInterval(data []float64, confidence float64) (CI, error) {
	if !(confidence > 0 && confidence < 1) {
		return CI{}, ErrBadConfidence
	}
	if len(data) < 2 {
		return CI{}, ErrTooFewSamples
	}
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return CI{}, fmt.Errorf("sample %d = %v: %w", i, x, ErrNonFinite)
		}
	}

	mean, std := stat.MeanStdDev(data, nil)
	z := distuv.UnitNormal.Quantile(0.5 + confidence/2)
	half := z * std / math.Sqrt(float64(len(data)))

	return CI{Mean: mean, Lower: mean - half, Upper: mean + half}, nil
}
