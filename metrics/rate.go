package metrics

import (
	"encoding/json"
	"strconv"

	"github.com/katalvlaran/ecgkit/match"
)

// Rate is a ratio that may be undefined.
type Rate struct {
	Value   float64
	Defined bool
}

func ratio(num, den int) Rate {
	if den == 0 {
		return Rate{}
	}
	return Rate{Value: float64(num) / float64(den), Defined: true}
}

// Strict returns the value, or ErrUndefinedMetric for an undefined rate.
func (r Rate) Strict() (float64, error) {
	if !r.Defined {
		return 0, ErrUndefinedMetric
	}
	return r.Value, nil
}

// OrZero returns the value, or 0 for an undefined rate.
func (r Rate) OrZero() float64 {
	if !r.Defined {
		return 0
	}
	return r.Value
}

func (r Rate) String() string {
	if !r.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(r.Value, 'f', 4, 64)
}

// MarshalJSON encodes an undefined rate as null.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// ConfusionCount tallies matched and unmatched items.
type ConfusionCount struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

// CountOf returns the tally of a matching.
func CountOf(r match.Result) ConfusionCount {
	return ConfusionCount{TP: r.TP(), FP: r.FP(), FN: r.FN()}
}

// Add returns the element-wise sum of c and o.
func (c ConfusionCount) Add(o ConfusionCount) ConfusionCount {
	return ConfusionCount{TP: c.TP + o.TP, FP: c.FP + o.FP, FN: c.FN + o.FN}
}

// Sensitivity is TP / (TP + FN). Undefined without reference items.
func (c ConfusionCount) Sensitivity() Rate { return ratio(c.TP, c.TP+c.FN) }

// Precision (positive predictive value) is TP / (TP + FP). Undefined
// without predicted items.
func (c ConfusionCount) Precision() Rate { return ratio(c.TP, c.TP+c.FP) }

// F1 is the harmonic mean of sensitivity and precision, computed as
// 2TP / (2TP + FP + FN). It is undefined only when all three counts are 0;
// it is 0 (not undefined) when one of its two inputs is undefined and the
// other is 0.
func (c ConfusionCount) F1() Rate { return ratio(2*c.TP, 2*c.TP+c.FP+c.FN) }
