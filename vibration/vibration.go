// Package vibration orchestrates the beam free-vibration analysis
// pipeline: conditioning, decay-window cropping, zero-crossing frequency
// estimation, and the cantilever-theory conversion to Young's modulus,
// plus per-length and overall aggregation across trials.
//
// Each trial is analyzed independently; any component failure is recorded
// as a status on the trial's result and never aborts the batch.
package vibration

import "fmt"

// Series is a sampled signal: parallel value and timestamp slices of
// equal length.
type Series struct {
	Values []float64
	Times  []float64
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Values) }

// Trial is one raw excitation-and-decay recording for a fixed beam
// length. The signal is borrowed read-only input; the pipeline never
// mutates it.
type Trial struct {
	LengthMM float64
	Index    int
	Signal   Series
}

// Status classifies the outcome of one trial's analysis.
type Status int

// Trial outcome statuses. Only StatusOK results carry meaningful
// frequency and modulus values.
const (
	StatusOK Status = iota
	StatusInvalidFilter
	StatusEmptyWindow
	StatusInsufficientCrossings
	StatusInvalidGeometry
)

// String returns a short machine-friendly status label.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidFilter:
		return "invalid_filter"
	case StatusEmptyWindow:
		return "empty_window"
	case StatusInsufficientCrossings:
		return "insufficient_crossings"
	case StatusInvalidGeometry:
		return "invalid_geometry"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// TrialResult is the immutable outcome of one trial's analysis.
// FrequencyHz and ModulusPa are only meaningful when Status is StatusOK.
type TrialResult struct {
	LengthMM    float64
	Index       int
	FrequencyHz float64
	ModulusPa   float64
	Status      Status

	// Err preserves the underlying failure for logging; nil when OK.
	Err error
}

// OK reports whether the trial produced usable frequency and modulus
// values.
func (r TrialResult) OK() bool { return r.Status == StatusOK }

// LengthSummary aggregates the OK trials of one beam length. The mean
// fields are nil when no trial succeeded: an absent value, never a
// silently implied zero.
type LengthSummary struct {
	LengthMM        float64
	MeanFrequencyHz *float64
	MeanModulusPa   *float64
	OKTrials        int
}

// OverallSummary aggregates all OK trials regardless of length.
// MeanModulusPa is nil when no trial succeeded. TotalTrials counts every
// attempted trial, including failures.
type OverallSummary struct {
	MeanModulusPa *float64
	TotalTrials   int
	OKTrials      int
}
