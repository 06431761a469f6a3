package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/ecgkit/extrema"
	"github.com/katalvlaran/ecgkit/interval"
	"github.com/katalvlaran/ecgkit/internal/config"
	"github.com/katalvlaran/ecgkit/match"
	"github.com/katalvlaran/ecgkit/metrics"
)

type rates struct {
	Sensitivity metrics.Rate `json:"sensitivity"`
	Precision   metrics.Rate `json:"precision"`
	F1          metrics.Rate `json:"f1"`
}

func ratesOf(c metrics.ConfusionCount) rates {
	return rates{Sensitivity: c.Sensitivity(), Precision: c.Precision(), F1: c.F1()}
}

type detectionSummary struct {
	Count metrics.ConfusionCount `json:"count"`
	rates
	Error metrics.Summary `json:"error_s"`
}

type recordReport struct {
	Name        string                    `json:"name"`
	Detection   *detectionSummary         `json:"detection,omitempty"`
	QRSScore    *float64                  `json:"qrs_score,omitempty"`
	Delineation metrics.DelineationReport `json:"delineation_ms,omitempty"`
}

type report struct {
	Config        *config.EvalConfig        `json:"config"`
	Records       []recordReport            `json:"records"`
	Detection     detectionSummary          `json:"detection"`
	QRSScore      metrics.Rate              `json:"qrs_score"`
	SensitivityCI *metrics.CI               `json:"sensitivity_ci,omitempty"`
	Delineation   metrics.DelineationReport `json:"delineation_ms,omitempty"`
}

func evaluate(ctx context.Context, records []recordInput, cfg *config.EvalConfig, log *slog.Logger) (*report, error) {
	strategy, err := cfg.GetStrategy()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.GetDelineationMode()
	if err != nil {
		return nil, err
	}
	classMap, err := cfg.GetClassMap()
	if err != nil {
		return nil, err
	}

	rep := &report{
		Config:      cfg.WithDefaults(),
		Records:     make([]recordReport, len(records)),
		Delineation: metrics.DelineationReport{},
	}

	// Detection: every record is converted to seconds so a single tolerance
	// serves records with different sampling frequencies.
	var batch []metrics.Record
	var batchPos []int
	for i, rec := range records {
		rep.Records[i].Name = rec.Name
		if !rec.hasDetection() {
			continue
		}
		pred := rec.Predicted
		if pred == nil {
			if pred, err = pickPeaks(rec, cfg); err != nil {
				return nil, fmt.Errorf("record %q: %w", rec.Name, err)
			}
			log.Debug("picked R-peaks", "record", rec.Name, "peaks", len(pred))
		}
		batch = append(batch, metrics.Record{Name: rec.Name, Pred: toSeconds(pred, rec.FS), Ref: toSeconds(rec.Reference, rec.FS)})
		batchPos = append(batchPos, i)
	}

	if len(batch) > 0 {
		mopts := match.Options{Tolerance: cfg.GetDetectionTolerance(), Strategy: strategy}
		br, err := metrics.ScoreDetectionBatch(ctx, batch, mopts, cfg.GetWorkers())
		if err != nil {
			return nil, err
		}
		rep.Detection = detectionSummary{Count: br.Total, rates: ratesOf(br.Total), Error: br.Errors}

		qopts := metrics.QRSOptions{FS: 1, Tolerance: cfg.GetDetectionTolerance(), Strategy: strategy}
		if w := cfg.QRSWindow; w != nil {
			qopts.Window = &interval.Interval{Start: w[0], End: w[1]}
		}
		refs, preds := make([][]float64, len(batch)), make([][]float64, len(batch))
		for k, rec := range batch {
			refs[k], preds[k] = rec.Ref, rec.Pred
		}
		qrs, err := metrics.QRSScore(refs, preds, qopts)
		if err != nil {
			return nil, err
		}
		rep.QRSScore = qrs.Score

		var sens []float64
		for k, r := range br.Records {
			i := batchPos[k]
			rep.Records[i].Detection = &detectionSummary{Count: r.Count, rates: ratesOf(r.Count), Error: r.Errors}
			rep.Records[i].QRSScore = &qrs.RecordScores[k]
			if se := r.Sensitivity(); se.Defined {
				sens = append(sens, se.Value)
			}
			log.Debug("record scored", "record", records[i].Name, "tp", r.Count.TP, "fp", r.Count.FP, "fn", r.Count.FN)
		}
		if len(sens) >= 2 {
			ci, err := metrics.ConfidenceInterval(sens, cfg.GetConfidence())
			if err != nil {
				return nil, err
			}
			rep.SensitivityCI = &ci
		} else {
			log.Debug("sensitivity interval skipped", "records", len(sens))
		}
	}

	// Delineation.
	for i, rec := range records {
		if !rec.hasDelineation() {
			continue
		}
		d, err := metrics.ScoreDelineationMasks(rec.PredictedMask, rec.ReferenceMask, metrics.MaskOptions{
			FS:        rec.FS,
			Tolerance: cfg.GetDelineationTolerance(),
			Strategy:  strategy,
			Mode:      mode,
			ClassMap:  classMap,
		})
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", rec.Name, err)
		}
		rep.Records[i].Delineation = d
		rep.Delineation.Merge(d)
	}

	return rep, nil
}

// pickPeaks returns R-peak sample indices found in the record's signal.
func pickPeaks(rec recordInput, cfg *config.EvalConfig) ([]float64, error) {
	opts := extrema.DefaultOptions()
	opts.MinSeparation = max(1, int(math.Round(cfg.GetPeakDistance()*rec.FS)))
	if cfg.PeakThreshold != nil {
		opts.UseThreshold = true
		opts.Threshold = *cfg.PeakThreshold
	}
	idx, err := extrema.FindAll(rec.Signal, opts)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = float64(i)
	}
	return out, nil
}
