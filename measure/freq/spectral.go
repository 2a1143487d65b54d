package freq

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrNoSpectralPeak reports a spectrum without a usable non-DC magnitude
// peak (silent or constant input).
var ErrNoSpectralPeak = errors.New("freq: no spectral peak found")

// EstimateSpectral returns the frequency of the strongest non-DC spectral
// component. The signal is Hann-windowed, transformed with an FFT sized to
// the next power of two, and the magnitude peak is refined by parabolic
// interpolation across its neighboring bins.
//
// This estimator is independent of the zero-crossing path and is used as a
// diagnostic cross-check: large disagreement between the two indicates a
// noisy or multi-modal trial.
func EstimateSpectral(values []float64, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("freq: sample rate must be > 0: %g", sampleRate)
	}

	if len(values) < 4 {
		return 0, fmt.Errorf("%w: %d samples", ErrNoSpectralPeak, len(values))
	}

	fftSize := nextPowerOf2(len(values))

	in := make([]complex128, fftSize)
	for i, v := range values {
		in[i] = complex(v*hann(i, len(values)), 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("freq: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("freq: fft forward: %w", err)
	}

	binCount := fftSize/2 + 1
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	for i := 0; i < binCount; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, binCount)
	vecmath.Magnitude(mag, re, im)

	// Strongest bin, DC excluded.
	peak := 1
	for i := 2; i < binCount-1; i++ {
		if mag[i] > mag[peak] {
			peak = i
		}
	}

	if mag[peak] <= 0 {
		return 0, ErrNoSpectralPeak
	}

	binHz := sampleRate / float64(fftSize)

	return (float64(peak) + parabolicOffset(mag, peak)) * binHz, nil
}

// parabolicOffset refines a magnitude peak by fitting a parabola through
// the peak bin and its neighbors, returning the fractional bin offset in
// [-0.5, 0.5].
func parabolicOffset(mag []float64, peak int) float64 {
	if peak <= 0 || peak >= len(mag)-1 {
		return 0
	}

	a, b, c := mag[peak-1], mag[peak], mag[peak+1]

	denom := a - 2*b + c
	if denom == 0 {
		return 0
	}

	off := 0.5 * (a - c) / denom
	if off < -0.5 || off > 0.5 {
		return 0
	}

	return off
}

func hann(i, n int) float64 {
	if n < 2 {
		return 1
	}

	return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
