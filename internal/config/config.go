// Package config loads the JSON evaluation settings used by cmd/ecgeval.
//
// Every field is optional. Omitted fields fall back to the defaults returned
// by the Get* accessors, so partial files are safe.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/ecgkit/match"
	"github.com/katalvlaran/ecgkit/metrics"
)

// Defaults for omitted fields.
const (
	DefaultStrategy        = "global-greedy"
	DefaultDelineationMode = "boundary"
	DefaultLogLevel        = "info"
	DefaultConfidence      = 0.95
	DefaultPeakDistance    = 0.2 // seconds between detected R-peaks
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// EvalConfig is the root evaluation configuration.
type EvalConfig struct {
	// Matching
	DetectionTolerance   *float64       `json:"detection_tolerance_s,omitempty"`
	DelineationTolerance *float64       `json:"delineation_tolerance_s,omitempty"`
	Strategy             *string        `json:"strategy,omitempty"`         // global-greedy | nearest-first | optimal
	DelineationMode      *string        `json:"delineation_mode,omitempty"` // boundary | whole
	ClassMap             map[string]int `json:"class_map,omitempty"`        // wave name (P, QRS, T) -> mask label

	// QRS record score window in seconds, e.g. [0.5, 9.5]; omitted scores the whole record.
	QRSWindow *[2]float64 `json:"qrs_window_s,omitempty"`

	// R-peak picking for records that carry a signal instead of predictions.
	PeakDistance  *float64 `json:"peak_distance_s,omitempty"`
	PeakThreshold *float64 `json:"peak_threshold,omitempty"`

	Confidence *float64 `json:"confidence,omitempty"`
	Workers    *int     `json:"workers,omitempty"`
	LogLevel   *string  `json:"log_level,omitempty"` // debug | info | warn | error
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// Load reads an EvalConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func Load(path string) (*EvalConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &EvalConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// WithDefaults returns a copy of c with every omitted field filled in.
func (c *EvalConfig) WithDefaults() *EvalConfig {
	out := *c
	out.DetectionTolerance = ptrFloat64(c.GetDetectionTolerance())
	out.DelineationTolerance = ptrFloat64(c.GetDelineationTolerance())
	out.Strategy = ptrString(c.getString(c.Strategy, DefaultStrategy))
	out.DelineationMode = ptrString(c.getString(c.DelineationMode, DefaultDelineationMode))
	out.PeakDistance = ptrFloat64(c.GetPeakDistance())
	out.Confidence = ptrFloat64(c.GetConfidence())
	out.Workers = ptrInt(c.GetWorkers())
	out.LogLevel = ptrString(c.GetLogLevel())
	if c.ClassMap == nil {
		out.ClassMap = map[string]int{}
		for w, label := range metrics.DefaultClassMap {
			out.ClassMap[w.String()] = label
		}
	}
	return &out
}

// Validate checks the values that are set.
func (c *EvalConfig) Validate() error {
	for name, v := range map[string]*float64{
		"detection_tolerance_s":   c.DetectionTolerance,
		"delineation_tolerance_s": c.DelineationTolerance,
		"peak_distance_s":         c.PeakDistance,
	} {
		if v != nil && (!(*v > 0) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%s must be a positive number, got %v", name, *v)
		}
	}
	if c.PeakThreshold != nil && (math.IsNaN(*c.PeakThreshold) || math.IsInf(*c.PeakThreshold, 0)) {
		return fmt.Errorf("peak_threshold must be finite, got %v", *c.PeakThreshold)
	}
	if c.Confidence != nil && !(*c.Confidence > 0 && *c.Confidence < 1) {
		return fmt.Errorf("confidence must be in (0, 1), got %v", *c.Confidence)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.QRSWindow != nil && !(c.QRSWindow[0] < c.QRSWindow[1]) {
		return fmt.Errorf("qrs_window_s must be [start, end] with start < end, got %v", *c.QRSWindow)
	}
	if _, err := c.GetStrategy(); err != nil {
		return fmt.Errorf("strategy %q: %w", *c.Strategy, err)
	}
	if _, err := c.GetDelineationMode(); err != nil {
		return fmt.Errorf("delineation_mode %q: %w", *c.DelineationMode, err)
	}
	if _, err := c.GetClassMap(); err != nil {
		return err
	}
	switch c.GetLogLevel() {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", *c.LogLevel)
	}

	return nil
}

func (c *EvalConfig) getString(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

// GetDetectionTolerance returns the R-peak tolerance in seconds.
func (c *EvalConfig) GetDetectionTolerance() float64 {
	if c.DetectionTolerance == nil {
		return metrics.DefaultDetectionTolerance
	}
	return *c.DetectionTolerance
}

// GetDelineationTolerance returns the wave boundary tolerance in seconds.
func (c *EvalConfig) GetDelineationTolerance() float64 {
	if c.DelineationTolerance == nil {
		return metrics.DefaultDelineationTolerance
	}
	return *c.DelineationTolerance
}

// GetStrategy parses the matching strategy.
func (c *EvalConfig) GetStrategy() (match.Strategy, error) {
	return match.ParseStrategy(c.getString(c.Strategy, DefaultStrategy))
}

// GetDelineationMode parses the interval matching mode.
func (c *EvalConfig) GetDelineationMode() (match.Mode, error) {
	return match.ParseMode(c.getString(c.DelineationMode, DefaultDelineationMode))
}

// GetClassMap returns the mask label per wave type; nil means the default map.
func (c *EvalConfig) GetClassMap() (map[metrics.WaveType]int, error) {
	if c.ClassMap == nil {
		return nil, nil
	}
	out := make(map[metrics.WaveType]int, len(c.ClassMap))
	for name, label := range c.ClassMap {
		w, ok := waveByName(name)
		if !ok {
			return nil, fmt.Errorf("class_map: %q: %w", name, metrics.ErrBadWaveType)
		}
		out[w] = label
	}
	return out, nil
}

func waveByName(name string) (metrics.WaveType, bool) {
	for _, w := range metrics.WaveTypes {
		if strings.EqualFold(w.String(), name) {
			return w, true
		}
	}
	return 0, false
}

// GetPeakDistance returns the minimum R-peak spacing in seconds.
func (c *EvalConfig) GetPeakDistance() float64 {
	if c.PeakDistance == nil {
		return DefaultPeakDistance
	}
	return *c.PeakDistance
}

// GetConfidence returns the confidence level of reported intervals.
func (c *EvalConfig) GetConfidence() float64 {
	if c.Confidence == nil {
		return DefaultConfidence
	}
	return *c.Confidence
}

// GetWorkers returns the batch scoring worker limit (0 = GOMAXPROCS).
func (c *EvalConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetLogLevel returns the log level name.
func (c *EvalConfig) GetLogLevel() string {
	return strings.ToLower(c.getString(c.LogLevel, DefaultLogLevel))
}
