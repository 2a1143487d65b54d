// Package decay extracts the analyzable amplitude-decay window from a
// conditioned free-vibration signal.
//
// The window starts at the excitation peak (the sample of maximum absolute
// amplitude) and runs to the last sample whose magnitude still exceeds a
// caller-chosen fraction of that peak. Everything before the peak is
// pre-excitation settling and noise; everything after the threshold is too
// weak for reliable zero-crossing timing.
package decay

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Crop.
var (
	// ErrInvalidFraction reports a crop fraction outside (0, 1].
	ErrInvalidFraction = errors.New("decay: crop fraction must be in (0, 1]")

	// ErrEmptyWindow reports a decay window of fewer than 2 samples.
	// This is a valid terminal outcome for a barely-excited or degenerate
	// trial, not a batch-fatal error.
	ErrEmptyWindow = errors.New("decay: window has fewer than 2 samples")
)

// Window is a contiguous slice of a conditioned signal, spanning from the
// excitation peak to the end of the usable decay. Values and Times alias
// the input slices; the window borrows, it does not copy.
type Window struct {
	Values []float64
	Times  []float64

	// PeakIndex is the window's start position in the original signal.
	PeakIndex int
}

// Crop locates the excitation peak and returns the decay window whose
// samples exceed fraction × |peak|. If the amplitude never drops below the
// threshold the window extends to the signal end. Returns ErrEmptyWindow
// when fewer than 2 samples remain.
//
// values and times must have equal length; fraction must be in (0, 1].
func Crop(values, times []float64, fraction float64) (Window, error) {
	if fraction <= 0 || fraction > 1 || math.IsNaN(fraction) {
		return Window{}, fmt.Errorf("%w: %g", ErrInvalidFraction, fraction)
	}

	if len(values) != len(times) {
		return Window{}, fmt.Errorf("decay: values/times length mismatch: %d vs %d",
			len(values), len(times))
	}

	if len(values) < 2 {
		return Window{}, fmt.Errorf("%w: signal has %d samples", ErrEmptyWindow, len(values))
	}

	start, end := span(values, fraction)
	if end-start+1 < 2 {
		return Window{}, fmt.Errorf("%w: %d samples above threshold after peak",
			ErrEmptyWindow, end-start+1)
	}

	return Window{
		Values:    values[start : end+1],
		Times:     times[start : end+1],
		PeakIndex: start,
	}, nil
}

// span returns the inclusive [peak, last-above-threshold] index range.
// The end never precedes the peak: a fraction of 1.0 collapses the span to
// the peak sample alone.
func span(values []float64, fraction float64) (start, end int) {
	peak := 0
	for i, v := range values {
		if math.Abs(v) > math.Abs(values[peak]) {
			peak = i
		}
	}

	threshold := fraction * math.Abs(values[peak])

	end = peak
	for i := peak + 1; i < len(values); i++ {
		if math.Abs(values[i]) > threshold {
			end = i
		}
	}

	return peak, end
}
