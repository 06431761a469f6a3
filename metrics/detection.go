package metrics

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ecgkit/match"
)

// Default tolerances in seconds; multiply by the sampling frequency when
// positions are sample indices.
const (
	DefaultDetectionTolerance   = 0.075
	DefaultDelineationTolerance = 0.15
)

// DetectionReport is the outcome of scoring one predicted event train.
type DetectionReport struct {
	Count  ConfusionCount `json:"count"`
	Pairs  []match.Pair   `json:"-"`
	Errors Summary        `json:"error"`
}

// Sensitivity, Precision and F1 are shorthands for the Count rates.
func (r DetectionReport) Sensitivity() Rate { return r.Count.Sensitivity() }
func (r DetectionReport) Precision() Rate   { return r.Count.Precision() }
func (r DetectionReport) F1() Rate          { return r.Count.F1() }

// ScoreDetection matches pred against ref and summarizes the result.
// Errors are those of match.MatchEvents.
func ScoreDetection(pred, ref []float64, opts match.Options) (DetectionReport, error) {
	res, err := match.MatchEvents(pred, ref, opts)
	if err != nil {
		return DetectionReport{}, err
	}

	return DetectionReport{
		Count:  CountOf(res),
		Pairs:  res.Pairs,
		Errors: summaryOf(res.Errors()),
	}, nil
}

// Record is one named detection input for ScoreDetectionBatch.
type Record struct {
	Name string
	Pred []float64
	Ref  []float64
}

// BatchReport aggregates per-record detection reports.
// Total and Errors are folded in record order.
type BatchReport struct {
	Records []DetectionReport `json:"records"`
	Total   ConfusionCount    `json:"total"`
	Errors  Summary           `json:"error"`
}

// ScoreDetectionBatch scores records concurrently with at most workers
// goroutines (workers <= 0 means GOMAXPROCS). The result equals scoring the
// records sequentially. The first failing record cancels the rest; its error
// is wrapped with the record name. ctx cancellation is checked before each
// record.
func ScoreDetectionBatch(ctx context.Context, records []Record, opts match.Options, workers int) (BatchReport, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	reports := make([]DetectionReport, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := ScoreDetection(records[i].Pred, records[i].Ref, opts)
			if err != nil {
				return fmt.Errorf("record %q: %w", records[i].Name, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchReport{}, err
	}

	out := BatchReport{Records: reports}
	for _, rep := range reports {
		out.Total = out.Total.Add(rep.Count)
		out.Errors.Merge(rep.Errors)
	}

	return out, nil
}
