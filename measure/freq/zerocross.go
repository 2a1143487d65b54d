// Package freq estimates the dominant oscillation frequency of a cropped
// free-vibration decay window.
//
// The primary estimator works in the time domain: zero-crossing instants
// are refined by linear interpolation and consecutive same-direction
// crossings bracket full periods, which are averaged. A secondary
// FFT-based estimator is provided as a diagnostic cross-check.
package freq

import (
	"errors"
	"fmt"
)

// ErrInsufficientCrossings reports a signal without enough same-direction
// zero-crossings to bracket a full period. The signal is too short, too
// noisy, or not oscillating.
var ErrInsufficientCrossings = errors.New("freq: fewer than 2 same-direction zero-crossings")

// crossing is one zero-crossing instant with its sign direction.
type crossing struct {
	time   float64
	rising bool
}

// EstimateZeroCross returns the dominant frequency of an oscillating signal
// from the timing of its zero-crossings.
//
// A crossing is a strict sign change between consecutive samples; samples
// that are exactly zero are skipped so a single touch of zero is not
// counted twice. Each crossing instant is refined by linear interpolation
// between the bracketing samples. Consecutive same-direction crossings
// (rising-to-rising, falling-to-falling) each bracket one full period;
// the estimate is the reciprocal of the mean period over both directions.
//
// Averaging across all available periods suppresses jitter from noise and
// filter transients; interpolation recovers timing precision lost to the
// discrete sample grid.
func EstimateZeroCross(values, times []float64) (float64, error) {
	if len(values) != len(times) {
		return 0, fmt.Errorf("freq: values/times length mismatch: %d vs %d",
			len(values), len(times))
	}

	crossings := findCrossings(values, times)

	var sum float64
	var count int

	// Pair consecutive crossings within each direction; each pair spans
	// exactly one period.
	var lastRise, lastFall *crossing
	for i := range crossings {
		c := &crossings[i]
		if c.rising {
			if lastRise != nil {
				sum += c.time - lastRise.time
				count++
			}
			lastRise = c
		} else {
			if lastFall != nil {
				sum += c.time - lastFall.time
				count++
			}
			lastFall = c
		}
	}

	if count < 1 {
		return 0, fmt.Errorf("%w: %d crossings total", ErrInsufficientCrossings, len(crossings))
	}

	mean := sum / float64(count)
	if mean <= 0 {
		return 0, fmt.Errorf("freq: non-positive mean period %g (non-increasing timestamps?)", mean)
	}

	return 1 / mean, nil
}

// findCrossings locates all strict sign changes and interpolates their
// instants. Zero-valued samples are skipped: the sign comparison always
// uses the most recent nonzero sample.
func findCrossings(values, times []float64) []crossing {
	var out []crossing

	prev := -1 // index of last nonzero sample
	for i := range values {
		if values[i] == 0 {
			continue
		}

		if prev >= 0 && values[prev]*values[i] < 0 {
			out = append(out, crossing{
				time:   interpolateCrossing(values[prev], values[i], times[prev], times[i]),
				rising: values[i] > 0,
			})
		}

		prev = i
	}

	return out
}

// interpolateCrossing returns the linearly interpolated time at which the
// segment (t0,v0)-(t1,v1) crosses zero. v0 and v1 must have opposite signs.
func interpolateCrossing(v0, v1, t0, t1 float64) float64 {
	return t0 + (t1-t0)*(-v0)/(v1-v0)
}
