package iir

import "math"

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
// Returns nil when order <= 0 or freq is outside (0, sampleRate/2).
func ButterworthLP(freq float64, order int, sampleRate float64) []Coefficients {
	if order <= 0 {
		return nil
	}

	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, lowpassRBJ(freq, q, sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}

	return sections
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2 // default Q
	}

	return 1 / (2 * s)
}

// lowpassRBJ designs a lowpass biquad at freq (Hz) with quality factor q
// using the RBJ cookbook formulas.
func lowpassRBJ(freq, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2
	a0 := 1 + alpha

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b0 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

// firstOrderLP designs a first-order lowpass Butterworth section.
// Used for odd-order filters.
func firstOrderLP(freq, sampleRate float64) Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return Coefficients{
		B0: k * norm,
		B1: k * norm,
		B2: 0,
		A1: (k - 1) * norm,
		A2: 0,
	}
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}
