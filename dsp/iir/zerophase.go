package iir

// ZeroPhase filters data through the cascade forward and then backward,
// cancelling the cascade's phase delay. The result is a new slice; the
// input is left untouched.
//
// The effective magnitude response is the square of the single-pass
// response, so the -3 dB point of the cascade becomes -6 dB here. No
// edge padding is applied; callers feeding short signals relative to the
// filter's settling time should expect transients near both ends.
func ZeroPhase(coeffs []Coefficients, data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)

	if len(coeffs) == 0 || len(data) == 0 {
		return out
	}

	chain := NewChain(coeffs)
	chain.ProcessBlock(out)

	reverse(out)
	chain.Reset()
	chain.ProcessBlock(out)
	reverse(out)

	return out
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
