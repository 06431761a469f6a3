package metrics

import (
	"fmt"
	"sort"
)

// Matrix is an nClasses × nClasses confusion matrix: At(i, j) counts samples
// with true label i predicted as j.
type Matrix struct {
	n      int
	counts []int // row-major
}

// NewConfusionMatrix counts labels against preds.
//
// Errors: ErrBadClassCount, ErrLengthMismatch, ErrLabelOutOfRange (wrapped
// with the sample position).
func NewConfusionMatrix(labels, preds []int, nClasses int) (*Matrix, error) {
	if nClasses < 1 {
		return nil, ErrBadClassCount
	}
	if len(labels) != len(preds) {
		return nil, fmt.Errorf("labels %d, preds %d: %w", len(labels), len(preds), ErrLengthMismatch)
	}
	m := &Matrix{n: nClasses, counts: make([]int, nClasses*nClasses)}
	for i := range labels {
		l, p := labels[i], preds[i]
		if l < 0 || l >= nClasses || p < 0 || p >= nClasses {
			return nil, fmt.Errorf("sample %d (label %d, pred %d): %w", i, l, p, ErrLabelOutOfRange)
		}
		m.counts[l*nClasses+p]++
	}
	return m, nil
}

// Classes returns the number of classes.
func (m *Matrix) Classes() int { return m.n }

// At returns the count of true class i predicted as j.
func (m *Matrix) At(i, j int) int { return m.counts[i*m.n+j] }

// Total returns the number of counted samples.
func (m *Matrix) Total() int {
	t := 0
	for _, c := range m.counts {
		t += c
	}
	return t
}

// BinaryTable is a one-vs-rest 2×2 table.
type BinaryTable struct {
	TP, FN, FP, TN int
}

// OneVsRest derives the 2×2 table of class c against all others.
func (m *Matrix) OneVsRest(c int) (BinaryTable, error) {
	if c < 0 || c >= m.n {
		return BinaryTable{}, ErrLabelOutOfRange
	}
	var t BinaryTable
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			v := m.At(i, j)
			switch {
			case i == c && j == c:
				t.TP += v
			case i == c:
				t.FN += v
			case j == c:
				t.FP += v
			default:
				t.TN += v
			}
		}
	}
	return t, nil
}

// OVRConfusionMatrix returns one BinaryTable per class.
func OVRConfusionMatrix(labels, preds []int, nClasses int) ([]BinaryTable, error) {
	m, err := NewConfusionMatrix(labels, preds, nClasses)
	if err != nil {
		return nil, err
	}
	out := make([]BinaryTable, nClasses)
	for c := range out {
		out[c], _ = m.OneVsRest(c)
	}
	return out, nil
}

// ClassMetrics are the rates derived from one BinaryTable.
type ClassMetrics struct {
	Sensitivity Rate `json:"sensitivity"`
	Specificity Rate `json:"specificity"`
	Precision   Rate `json:"precision"`
	NPV         Rate `json:"npv"`
	Accuracy    Rate `json:"accuracy"`
	F1          Rate `json:"f1"`
	Jaccard     Rate `json:"jaccard"`
}

// Metrics derives the ClassMetrics of t.
func (t BinaryTable) Metrics() ClassMetrics {
	return ClassMetrics{
		Sensitivity: ratio(t.TP, t.TP+t.FN),
		Specificity: ratio(t.TN, t.TN+t.FP),
		Precision:   ratio(t.TP, t.TP+t.FP),
		NPV:         ratio(t.TN, t.TN+t.FN),
		Accuracy:    ratio(t.TP+t.TN, t.TP+t.TN+t.FP+t.FN),
		F1:          ratio(2*t.TP, 2*t.TP+t.FP+t.FN),
		Jaccard:     ratio(t.TP, t.TP+t.FP+t.FN),
	}
}

// ClassReport holds per-class metrics and their macro averages.
// A macro average is the mean over classes where the rate is defined, and
// is undefined when no class defines it.
type ClassReport struct {
	PerClass []ClassMetrics `json:"per_class"`
	Macro    ClassMetrics   `json:"macro"`
}

// MetricsFromConfusionMatrix derives the per-class and macro metrics of m.
func MetricsFromConfusionMatrix(m *Matrix) ClassReport {
	rep := ClassReport{PerClass: make([]ClassMetrics, m.n)}
	for c := range rep.PerClass {
		t, _ := m.OneVsRest(c)
		rep.PerClass[c] = t.Metrics()
	}

	field := func(get func(ClassMetrics) Rate) Rate {
		var sum float64
		var k int
		for _, cm := range rep.PerClass {
			if r := get(cm); r.Defined {
				sum += r.Value
				k++
			}
		}
		if k == 0 {
			return Rate{}
		}
		return Rate{Value: sum / float64(k), Defined: true}
	}
	rep.Macro = ClassMetrics{
		Sensitivity: field(func(c ClassMetrics) Rate { return c.Sensitivity }),
		Specificity: field(func(c ClassMetrics) Rate { return c.Specificity }),
		Precision:   field(func(c ClassMetrics) Rate { return c.Precision }),
		NPV:         field(func(c ClassMetrics) Rate { return c.NPV }),
		Accuracy:    field(func(c ClassMetrics) Rate { return c.Accuracy }),
		F1:          field(func(c ClassMetrics) Rate { return c.F1 }),
		Jaccard:     field(func(c ClassMetrics) Rate { return c.Jaccard }),
	}

	return rep
}

// TopNAccuracy is the fraction of samples whose label appears among the
// first n entries of its ranked prediction list. Rows shorter than n are
// used as they are. The rate is undefined for zero samples.
//
// Errors: ErrBadClassCount, ErrBadTopN, ErrLengthMismatch, ErrLabelOutOfRange.
func TopNAccuracy(ranked [][]int, labels []int, n, nClasses int) (Rate, error) {
	if nClasses < 1 {
		return Rate{}, ErrBadClassCount
	}
	if n < 1 || n > nClasses {
		return Rate{}, ErrBadTopN
	}
	if len(ranked) != len(labels) {
		return Rate{}, fmt.Errorf("ranked %d, labels %d: %w", len(ranked), len(labels), ErrLengthMismatch)
	}

	hits := 0
	for i, l := range labels {
		if l < 0 || l >= nClasses {
			return Rate{}, fmt.Errorf("sample %d (label %d): %w", i, l, ErrLabelOutOfRange)
		}
		row := ranked[i]
		if len(row) > n {
			row = row[:n]
		}
		for _, c := range row {
			if c == l {
				hits++
				break
			}
		}
	}
	return ratio(hits, len(labels)), nil
}

// RankScores returns, per row, the class indices ordered by decreasing
// score; equal scores keep the lower index first.
func RankScores(scores [][]float64) [][]int {
	out := make([][]int, len(scores))
	for i, row := range scores {
		idx := make([]int, len(row))
		for j := range idx {
			idx[j] = j
		}
		sort.SliceStable(idx, func(a, b int) bool { return row[idx[a]] > row[idx[b]] })
		out[i] = idx
	}
	return out
}
