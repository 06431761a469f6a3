// Package metrics turns matchings and label sequences into evaluation
// numbers for ECG detectors, delineators and classifiers.
//
// 🚀 What is metrics?
//
//	The scoring layer on top of package match:
//	  • Detection  — R-peak (or any point event) scoring: TP/FP/FN,
//	    sensitivity, precision, F1 and the localization error summary.
//	  • Delineation — per wave type (P, QRS, T) onset and offset scoring with
//	    mean and standard deviation of boundary errors.
//	  • Classification — confusion matrix, one-vs-rest tables, per-class and
//	    macro metrics, top-n accuracy.
//	  • CPSC2019-style QRS record score and a normal-approximation
//	    confidence interval of a mean.
//
// ✨ Conventions
//
//   - A rate with a zero denominator is never NaN. It is a Rate with
//     Defined == false; Strict() turns it into ErrUndefinedMetric and
//     OrZero() into 0. Pick one per report and apply it everywhere.
//   - Error statistics accumulate with Welford's update (Summary), so large
//     record sets keep full precision and partial summaries can be merged.
//   - Standard deviations of boundary errors are population deviations: a
//     single matched pair has std 0.
//   - ScoreDetectionBatch is the only concurrent entry point; its result is
//     identical to scoring the records one by one.
//
// ⚙️ Usage
//
//	rep, err := metrics.ScoreDetection(pred, ref, match.DefaultOptions(0.075*fs))
//	if err != nil { ... }
//	se := rep.Count.Sensitivity().OrZero()
//	ppv, err := rep.Count.Precision().Strict()
package metrics
