package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ecgkit/interval"
	"github.com/katalvlaran/ecgkit/match"
)

// WaveType identifies an ECG wave scored by ScoreDelineation.
type WaveType int

const (
	P WaveType = iota
	QRS
	T
)

// WaveTypes lists the scored wave types in report order.
var WaveTypes = []WaveType{P, QRS, T}

func (w WaveType) String() string {
	switch w {
	case P:
		return "P"
	case QRS:
		return "QRS"
	case T:
		return "T"
	}
	return fmt.Sprintf("WaveType(%d)", int(w))
}

// MarshalText lets WaveType key JSON objects.
func (w WaveType) MarshalText() ([]byte, error) {
	if !w.valid() {
		return nil, ErrBadWaveType
	}
	return []byte(w.String()), nil
}

func (w WaveType) valid() bool { return w >= P && w <= T }

// Waveforms groups wave intervals (onset, offset) by wave type.
type Waveforms map[WaveType][]interval.Interval

// BoundaryReport scores one boundary (onset or offset) of one wave type.
type BoundaryReport struct {
	Count  ConfusionCount `json:"count"`
	Errors Summary        `json:"error"`
}

// Sensitivity, Precision and F1 are shorthands for the Count rates.
func (b BoundaryReport) Sensitivity() Rate { return b.Count.Sensitivity() }
func (b BoundaryReport) Precision() Rate   { return b.Count.Precision() }
func (b BoundaryReport) F1() Rate          { return b.Count.F1() }

// WaveReport holds the onset and offset scores of one wave type.
type WaveReport struct {
	Onset  BoundaryReport `json:"onset"`
	Offset BoundaryReport `json:"offset"`
}

// DelineationReport maps every scored wave type to its report.
type DelineationReport map[WaveType]WaveReport

// Merge folds o into r, wave by wave.
func (r DelineationReport) Merge(o DelineationReport) {
	for w, rep := range o {
		cur := r[w]
		cur.Onset.Count = cur.Onset.Count.Add(rep.Onset.Count)
		cur.Onset.Errors.Merge(rep.Onset.Errors)
		cur.Offset.Count = cur.Offset.Count.Add(rep.Offset.Count)
		cur.Offset.Errors.Merge(rep.Offset.Errors)
		r[w] = cur
	}
}

// ScoreDelineation scores every wave type found in pred or ref, each one
// independently, with match.MatchIntervals under opts. A wave type present
// on one side only is scored against an empty list.
//
// Errors: ErrBadWaveType for an unknown key, otherwise those of
// match.MatchIntervals wrapped with the wave type.
func ScoreDelineation(pred, ref Waveforms, opts match.Options) (DelineationReport, error) {
	waves := make(map[WaveType]bool)
	for w := range pred {
		waves[w] = true
	}
	for w := range ref {
		waves[w] = true
	}
	order := make([]WaveType, 0, len(waves))
	for w := range waves {
		if !w.valid() {
			return nil, fmt.Errorf("%v: %w", w, ErrBadWaveType)
		}
		order = append(order, w)
	}
	sort.Slice(order, func(a, b int) bool { return order[a] < order[b] })

	out := make(DelineationReport, len(order))
	for _, w := range order {
		res, err := match.MatchIntervals(pred[w], ref[w], opts)
		if err != nil {
			return nil, fmt.Errorf("wave %v: %w", w, err)
		}
		out[w] = WaveReport{
			Onset:  BoundaryReport{Count: CountOf(res.Onset), Errors: summaryOf(res.Onset.Errors())},
			Offset: BoundaryReport{Count: CountOf(res.Offset), Errors: summaryOf(res.Offset.Errors())},
		}
	}

	return out, nil
}

// DefaultClassMap is the LUDB-style mask labelling: 0 background, 1 P,
// 2 QRS, 3 T.
var DefaultClassMap = map[WaveType]int{P: 1, QRS: 2, T: 3}

// MaskToIntervals returns the maximal runs of label in mask as half-open
// sample ranges [first, last+1).
func MaskToIntervals(mask []int, label int) []interval.Interval {
	out := make([]interval.Interval, 0)
	start := -1
	for i, v := range mask {
		switch {
		case v == label && start < 0:
			start = i
		case v != label && start >= 0:
			out = append(out, interval.Interval{Start: float64(start), End: float64(i)})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, interval.Interval{Start: float64(start), End: float64(len(mask))})
	}

	return out
}

// MasksToWaveforms converts a per-sample label mask into Waveforms in
// sample units. classMap nil means DefaultClassMap.
func MasksToWaveforms(mask []int, classMap map[WaveType]int) (Waveforms, error) {
	if classMap == nil {
		classMap = DefaultClassMap
	}
	out := make(Waveforms, len(classMap))
	for w, label := range classMap {
		if !w.valid() {
			return nil, fmt.Errorf("%v: %w", w, ErrBadWaveType)
		}
		out[w] = MaskToIntervals(mask, label)
	}
	return out, nil
}

// MaskOptions configures ScoreDelineationMasks.
//
//   - FS        — sampling frequency in Hz (> 0).
//   - Tolerance — match tolerance in seconds.
//   - Strategy, Mode — passed to match.MatchIntervals.
//   - ClassMap  — mask label per wave type; nil means DefaultClassMap.
type MaskOptions struct {
	FS        float64
	Tolerance float64
	Strategy  match.Strategy
	Mode      match.Mode
	ClassMap  map[WaveType]int
}

// DefaultMaskOptions returns a 0.15 s tolerance, global greedy boundary
// matching and DefaultClassMap at sampling frequency fs.
func DefaultMaskOptions(fs float64) MaskOptions {
	return MaskOptions{FS: fs, Tolerance: DefaultDelineationTolerance, Strategy: match.GlobalGreedy, Mode: match.Boundary}
}

// ScoreDelineationMasks scores a predicted label mask against a reference
// mask of the same length. Boundaries are compared in milliseconds, so the
// report's errors are in ms.
func ScoreDelineationMasks(pred, ref []int, opts MaskOptions) (DelineationReport, error) {
	if !(opts.FS > 0) || math.IsInf(opts.FS, 0) {
		return nil, ErrBadSampleRate
	}
	if len(pred) != len(ref) {
		return nil, fmt.Errorf("mask lengths %d and %d: %w", len(pred), len(ref), ErrLengthMismatch)
	}
	predWaves, err := MasksToWaveforms(pred, opts.ClassMap)
	if err != nil {
		return nil, err
	}
	refWaves, err := MasksToWaveforms(ref, opts.ClassMap)
	if err != nil {
		return nil, err
	}
	toMS := 1000 / opts.FS
	scale(predWaves, toMS)
	scale(refWaves, toMS)

	return ScoreDelineation(predWaves, refWaves, match.Options{
		Tolerance: opts.Tolerance * 1000,
		Strategy:  opts.Strategy,
		Mode:      opts.Mode,
	})
}

func scale(ws Waveforms, k float64) {
	for _, ivs := range ws {
		for i := range ivs {
			ivs[i].Start *= k
			ivs[i].End *= k
		}
	}
}
