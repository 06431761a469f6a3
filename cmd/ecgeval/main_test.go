package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `{"records": [
  {"name": "r1", "fs": 100, "reference": [100, 200, 300], "predicted": [101, 199, 250, 300]},
  {"name": "r2", "fs": 200, "reference": [200, 400], "predicted": [202]},
  {"name": "r3", "fs": 100, "reference": [3, 8],
   "signal": [0, 0, 1, 5, 1, 0, 0, 1, 6, 1, 0]},
  {"name": "masks", "fs": 500,
   "reference_mask": [0, 0, 1, 1, 1, 0, 2, 2, 2, 2, 0, 3, 3, 3, 0, 0],
   "predicted_mask": [0, 0, 0, 1, 1, 0, 2, 2, 2, 2, 0, 0, 0, 0, 0, 0]}
]}`

type decodedReport struct {
	Records []struct {
		Name      string `json:"name"`
		Detection *struct {
			Count struct{ TP, FP, FN int } `json:"count"`
		} `json:"detection"`
		QRSScore    *float64                   `json:"qrs_score"`
		Delineation map[string]json.RawMessage `json:"delineation_ms"`
	} `json:"records"`
	Detection struct {
		Count       struct{ TP, FP, FN int } `json:"count"`
		Sensitivity *float64                 `json:"sensitivity"`
		Precision   *float64                 `json:"precision"`
	} `json:"detection"`
	QRSScore      *float64 `json:"qrs_score"`
	SensitivityCI *struct {
		Mean float64 `json:"mean"`
	} `json:"sensitivity_ci"`
	Delineation map[string]struct {
		Onset struct {
			Count struct{ TP, FP, FN int } `json:"count"`
			Error struct {
				N    int      `json:"n"`
				Mean *float64 `json:"mean"`
			} `json:"error"`
		} `json:"onset"`
	} `json:"delineation_ms"`
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_Report(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "records.json", recordsJSON)
	cfg := writeFile(t, dir, "eval.json", `{"detection_tolerance_s": 0.05, "peak_distance_s": 0.03, "log_level": "debug"}`)
	out := filepath.Join(dir, "report.json")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", cfg, "-input", input, "-workers", "2", "-out", out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "evaluation done")
	assert.Contains(t, stderr.String(), "picked R-peaks")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rep decodedReport
	require.NoError(t, json.Unmarshal(data, &rep))

	require.Len(t, rep.Records, 4)
	// r1: 250 is a false positive; r2: 400 is missed; r3: peaks at 3 and 8.
	assert.Equal(t, struct{ TP, FP, FN int }{3, 1, 0}, rep.Records[0].Detection.Count)
	assert.Equal(t, struct{ TP, FP, FN int }{1, 0, 1}, rep.Records[1].Detection.Count)
	assert.Equal(t, struct{ TP, FP, FN int }{2, 0, 0}, rep.Records[2].Detection.Count)
	assert.Nil(t, rep.Records[3].Detection)
	assert.Equal(t, struct{ TP, FP, FN int }{6, 1, 1}, rep.Detection.Count)

	require.NotNil(t, rep.Records[0].QRSScore)
	assert.Equal(t, 0.7, *rep.Records[0].QRSScore)
	require.NotNil(t, rep.QRSScore)
	assert.InDelta(t, (0.7+0.7+1)/3, *rep.QRSScore, 1e-12)
	require.NotNil(t, rep.SensitivityCI)
	assert.InDelta(t, (1+0.5+1)/3.0, rep.SensitivityCI.Mean, 1e-12)

	require.Contains(t, rep.Delineation, "P")
	assert.Equal(t, 1, rep.Delineation["P"].Onset.Count.TP)
	require.NotNil(t, rep.Delineation["P"].Onset.Error.Mean)
	assert.Equal(t, 2.0, *rep.Delineation["P"].Onset.Error.Mean)
	assert.Equal(t, 1, rep.Delineation["T"].Onset.Count.FN)
	assert.Contains(t, rep.Records[3].Delineation, "QRS")
}

func TestRun_DefaultsToStdout(t *testing.T) {
	input := writeFile(t, t.TempDir(), "records.json", `{"records": [{"fs": 250, "reference": [10], "predicted": []}]}`)
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-input", input}, &stdout, &stderr))

	var rep decodedReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))
	assert.Equal(t, "#0", rep.Records[0].Name)
	assert.Equal(t, struct{ TP, FP, FN int }{0, 0, 1}, rep.Detection.Count)
	require.NotNil(t, rep.Detection.Sensitivity)
	assert.Equal(t, 0.0, *rep.Detection.Sensitivity)
	assert.Nil(t, rep.Detection.Precision, "undefined precision is null")
	assert.Nil(t, rep.SensitivityCI)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	assert.ErrorContains(t, run(context.Background(), nil, &stdout, &stderr), "-input is required")

	bad := writeFile(t, dir, "bad.json", `{"records": [{"name": "x", "fs": 0}]}`)
	assert.ErrorContains(t, run(context.Background(), []string{"-input", bad}, &stdout, &stderr), "fs must be positive")

	input := writeFile(t, dir, "records.json", recordsJSON)
	cfg := writeFile(t, dir, "eval.json", `{"strategy": "closest"}`)
	assert.ErrorContains(t, run(context.Background(), []string{"-config", cfg, "-input", input}, &stdout, &stderr), "strategy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, run(ctx, []string{"-input", input}, &stdout, &stderr), context.Canceled)
}
