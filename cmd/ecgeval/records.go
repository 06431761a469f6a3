package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// recordInput is one entry of the records file. Positions and masks are in
// samples at FS Hz.
type recordInput struct {
	Name          string    `json:"name"`
	FS            float64   `json:"fs"`
	Reference     []float64 `json:"reference,omitempty"`
	Predicted     []float64 `json:"predicted,omitempty"`
	Signal        []float64 `json:"signal,omitempty"` // R-peaks are picked from it when Predicted is absent
	ReferenceMask []int     `json:"reference_mask,omitempty"`
	PredictedMask []int     `json:"predicted_mask,omitempty"`
}

type recordsFile struct {
	Records []recordInput `json:"records"`
}

func readRecords(path string) ([]recordInput, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("records file must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var in recordsFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse records JSON: %w", err)
	}
	for i, rec := range in.Records {
		if !(rec.FS > 0) || math.IsInf(rec.FS, 0) {
			return nil, fmt.Errorf("record %d (%q): fs must be positive, got %v", i, rec.Name, rec.FS)
		}
		if rec.Name == "" {
			in.Records[i].Name = fmt.Sprintf("#%d", i)
		}
	}

	return in.Records, nil
}

// hasDetection reports whether the record carries beats to score.
func (r recordInput) hasDetection() bool {
	return r.Reference != nil && (r.Predicted != nil || r.Signal != nil)
}

// hasDelineation reports whether the record carries both label masks.
func (r recordInput) hasDelineation() bool {
	return r.ReferenceMask != nil && r.PredictedMask != nil
}

func toSeconds(xs []float64, fs float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x / fs
	}
	return out
}
