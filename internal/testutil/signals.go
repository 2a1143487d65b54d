package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DecayingSine generates amplitude·e^(-t/tau)·sin(2π·freqHz·t), the shape
// of a free-vibration decay after impact excitation.
func DecayingSine(freqHz, sampleRate, amplitude, tau float64, length int) []float64 {
	out := make([]float64, length)

	for i := range out {
		t := float64(i) / sampleRate
		out[i] = amplitude * math.Exp(-t/tau) * math.Sin(2*math.Pi*freqHz*t)
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Timestamps returns length timestamps spaced 1/sampleRate apart starting
// at zero.
func Timestamps(sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i) / sampleRate
	}

	return out
}
