package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/ecgkit/interval"
	"github.com/katalvlaran/ecgkit/match"
)

// QRSOptions configures QRSScore. Positions are sample indices.
//
//   - FS        — sampling frequency in Hz (> 0).
//   - Tolerance — match tolerance in seconds (default 0.075).
//   - Window    — if non-nil, only beats inside the closed sample range are
//     scored, on both sides (CPSC2019 scores [0.5 s, 9.5 s] of 10 s records).
//   - Strategy  — matching strategy.
type QRSOptions struct {
	FS        float64
	Tolerance float64
	Window    *interval.Interval
	Strategy  match.Strategy
}

// DefaultQRSOptions returns the CPSC2019 setup at sampling frequency fs.
func DefaultQRSOptions(fs float64) QRSOptions {
	return QRSOptions{
		FS:        fs,
		Tolerance: DefaultDetectionTolerance,
		Window:    &interval.Interval{Start: 0.5 * fs, End: 9.5 * fs},
		Strategy:  match.GlobalGreedy,
	}
}

// QRSReport holds the per-record scores and their mean.
type QRSReport struct {
	RecordScores []float64        `json:"record_scores"`
	Counts       []ConfusionCount `json:"counts"`
	Score        Rate             `json:"score"`
}

// recordScore maps a record's FP+FN to its CPSC2019 score.
func recordScore(c ConfusionCount) float64 {
	switch c.FP + c.FN {
	case 0:
		return 1
	case 1:
		return 0.7
	case 2:
		return 0.3
	}
	return 0
}

// QRSScore scores each record (refs[i] against preds[i]) with 1 for a
// perfect record, 0.7 for one error, 0.3 for two and 0 otherwise, where an
// error is a false positive or a false negative. Score is the mean over
// records, undefined for zero records.
//
// Errors: ErrBadSampleRate, ErrLengthMismatch, and those of
// match.MatchEvents wrapped with the record position.
func QRSScore(refs, preds [][]float64, opts QRSOptions) (QRSReport, error) {
	if !(opts.FS > 0) || math.IsInf(opts.FS, 0) {
		return QRSReport{}, ErrBadSampleRate
	}
	if len(refs) != len(preds) {
		return QRSReport{}, fmt.Errorf("refs %d, preds %d: %w", len(refs), len(preds), ErrLengthMismatch)
	}

	mopts := match.Options{Tolerance: opts.Tolerance * opts.FS, Strategy: opts.Strategy}
	rep := QRSReport{RecordScores: make([]float64, len(refs)), Counts: make([]ConfusionCount, len(refs))}
	for i := range refs {
		res, err := match.MatchEvents(window(preds[i], opts.Window), window(refs[i], opts.Window), mopts)
		if err != nil {
			return QRSReport{}, fmt.Errorf("record %d: %w", i, err)
		}
		rep.Counts[i] = CountOf(res)
		rep.RecordScores[i] = recordScore(rep.Counts[i])
	}
	if len(refs) > 0 {
		rep.Score = Rate{Value: stat.Mean(rep.RecordScores, nil), Defined: true}
	}

	return rep, nil
}

func window(xs []float64, w *interval.Interval) []float64 {
	if w == nil {
		return xs
	}
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if interval.ContainsClosed(x, *w) {
			out = append(out, x)
		}
	}
	return out
}
