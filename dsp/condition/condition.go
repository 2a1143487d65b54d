// Package condition prepares a raw sensor recording for frequency analysis:
// it removes the static sensor bias (DC offset) and low-passes the signal so
// the fundamental vibration mode dominates over electrical noise and higher
// harmonics.
package condition

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-modal/dsp/iir"
)

// ErrInvalidFilterSpec reports a filter configuration that cannot be
// realized: non-positive cutoff or sample rate, a cutoff at or above
// Nyquist, or an order below 1.
var ErrInvalidFilterSpec = errors.New("condition: invalid filter spec")

// Conditioner removes DC offset and applies a zero-phase Butterworth
// low-pass to raw trial signals. A single Conditioner is safe to share
// across trials; Condition does not retain state between calls.
type Conditioner struct {
	coeffs []iir.Coefficients
}

// New creates a Conditioner for the given low-pass cutoff, sample rate and
// filter order. Fails with ErrInvalidFilterSpec when order < 1, either rate
// is non-positive, or cutoffHz >= sampleRateHz/2.
func New(cutoffHz, sampleRateHz float64, order int) (*Conditioner, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: order %d < 1", ErrInvalidFilterSpec, order)
	}

	if sampleRateHz <= 0 {
		return nil, fmt.Errorf("%w: sample rate %g <= 0", ErrInvalidFilterSpec, sampleRateHz)
	}

	if cutoffHz <= 0 {
		return nil, fmt.Errorf("%w: cutoff %g <= 0", ErrInvalidFilterSpec, cutoffHz)
	}

	if cutoffHz >= sampleRateHz/2 {
		return nil, fmt.Errorf("%w: cutoff %g Hz >= Nyquist %g Hz",
			ErrInvalidFilterSpec, cutoffHz, sampleRateHz/2)
	}

	coeffs := iir.ButterworthLP(cutoffHz, order, sampleRateHz)
	if coeffs == nil {
		return nil, fmt.Errorf("%w: cutoff %g Hz, order %d, sample rate %g Hz",
			ErrInvalidFilterSpec, cutoffHz, order, sampleRateHz)
	}

	return &Conditioner{coeffs: coeffs}, nil
}

// Condition centers data on its arithmetic mean and applies the configured
// zero-phase low-pass. The result is a new slice of the same length; the
// input and its timestamps are untouched.
func (c *Conditioner) Condition(data []float64) []float64 {
	centered := make([]float64, len(data))

	mean := Mean(data)
	for i, v := range data {
		centered[i] = v - mean
	}

	return iir.ZeroPhase(c.coeffs, centered)
}

// Mean returns the arithmetic mean of data using Kahan summation for
// numerical stability. Returns 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var sum, comp float64
	for _, x := range data {
		y := x - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}

	return sum / float64(len(data))
}
