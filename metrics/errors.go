// Package metrics: sentinel error set.
// Every scorer returns these sentinels (possibly wrapped with the offending
// position) and tests check them via errors.Is. No scorer panics on user input.

package metrics

import "errors"

var (
	// ErrUndefinedMetric is returned by Rate.Strict when the rate has a zero
	// denominator (e.g. precision with no predictions).
	ErrUndefinedMetric = errors.New("metrics: rate undefined (zero denominator)")

	// ErrLengthMismatch indicates paired inputs of different lengths.
	ErrLengthMismatch = errors.New("metrics: input lengths differ")

	// ErrBadClassCount indicates nClasses < 1.
	ErrBadClassCount = errors.New("metrics: class count must be positive")

	// ErrLabelOutOfRange indicates a label or prediction outside [0, nClasses).
	ErrLabelOutOfRange = errors.New("metrics: label out of range")

	// ErrBadTopN indicates n < 1 or n > nClasses in TopNAccuracy.
	ErrBadTopN = errors.New("metrics: top-n must be in [1, nClasses]")

	// ErrBadWaveType indicates a Waveforms key other than P, QRS or T.
	ErrBadWaveType = errors.New("metrics: unknown wave type")

	// ErrBadSampleRate indicates a sampling frequency that is not a positive finite number.
	ErrBadSampleRate = errors.New("metrics: sampling frequency must be positive and finite")

	// ErrBadConfidence indicates a confidence level outside (0, 1).
	ErrBadConfidence = errors.New("metrics: confidence must be in (0, 1)")

	// ErrTooFewSamples indicates fewer than two samples for a confidence interval.
	ErrTooFewSamples = errors.New("metrics: at least two samples required")

	// ErrNonFinite indicates a NaN or infinite sample.
	ErrNonFinite = errors.New("metrics: sample is NaN or Inf")
)
