package iir

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

func rms(data []float64) float64 {
	var sumSq float64
	for _, x := range data {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(data)))
}

func TestButterworthLP_SectionCount(t *testing.T) {
	sr := 5000.0
	for order := 1; order <= 8; order++ {
		want := (order + 1) / 2

		got := ButterworthLP(70, order, sr)
		if len(got) != want {
			t.Fatalf("order %d: sections=%d, want %d", order, len(got), want)
		}
	}
}

func TestButterworthLP_OddOrder_FirstOrderTail(t *testing.T) {
	for _, order := range []int{1, 3, 5, 7} {
		sections := ButterworthLP(70, order, 5000)

		last := sections[len(sections)-1]
		if last.B2 != 0 || last.A2 != 0 {
			t.Fatalf("order %d: tail section not first-order: %+v", order, last)
		}
	}
}

func TestButterworthLP_EvenOrder_AllSecondOrder(t *testing.T) {
	for _, order := range []int{2, 4, 6, 8} {
		for i, s := range ButterworthLP(70, order, 5000) {
			if s.B2 == 0 && s.A2 == 0 {
				t.Fatalf("order %d: section %d unexpectedly first-order", order, i)
			}
		}
	}
}

func TestButterworthLP_InvalidInputs(t *testing.T) {
	cases := []struct {
		name       string
		freq       float64
		order      int
		sampleRate float64
	}{
		{"zero order", 70, 0, 5000},
		{"negative order", 70, -1, 5000},
		{"zero freq", 0, 4, 5000},
		{"negative freq", -10, 4, 5000},
		{"freq at nyquist", 2500, 4, 5000},
		{"freq above nyquist", 3000, 4, 5000},
		{"zero sample rate", 70, 4, 0},
	}
	for _, tc := range cases {
		if got := ButterworthLP(tc.freq, tc.order, tc.sampleRate); got != nil {
			t.Errorf("%s: expected nil, got %d sections", tc.name, len(got))
		}
	}
}

func TestButterworthLP_Minus3dBAtCutoff(t *testing.T) {
	sr := 48000.0
	fc := 1000.0

	for _, order := range []int{1, 2, 4, 6} {
		chain := NewChain(ButterworthLP(fc, order, sr))

		in := sine(fc, sr, 1, 48000)
		out := make([]float64, len(in))
		copy(out, in)
		chain.ProcessBlock(out)

		// Skip the settling transient before measuring.
		ratio := rms(out[8000:]) / rms(in[8000:])
		want := 1 / math.Sqrt2

		if !almostEqual(ratio, want, 0.02) {
			t.Errorf("order %d: gain at cutoff %.4f, want %.4f", order, ratio, want)
		}
	}
}

func TestButterworthLP_HigherOrderSteeperRolloff(t *testing.T) {
	sr := 48000.0
	fc := 1000.0
	prevGain := math.Inf(1)

	for _, order := range []int{1, 2, 4, 6} {
		chain := NewChain(ButterworthLP(fc, order, sr))

		out := sine(4*fc, sr, 1, 48000)
		chain.ProcessBlock(out)

		gain := rms(out[8000:])
		if gain >= prevGain {
			t.Fatalf("order %d: gain %.5f not below previous %.5f", order, gain, prevGain)
		}

		prevGain = gain
	}
}

func TestSection_ProcessBlockMatchesProcessSample(t *testing.T) {
	coeffs := ButterworthLP(70, 2, 5000)[0]
	in := sine(30, 5000, 1, 500)

	blockSec := NewSection(coeffs)
	block := make([]float64, len(in))
	copy(block, in)
	blockSec.ProcessBlock(block)

	sampleSec := NewSection(coeffs)
	for i, x := range in {
		y := sampleSec.ProcessSample(x)
		if y != block[i] {
			t.Fatalf("index %d: sample path %v, block path %v", i, y, block[i])
		}
	}
}

func TestChain_ResetClearsState(t *testing.T) {
	chain := NewChain(ButterworthLP(70, 4, 5000))

	first := make([]float64, 200)
	for i := range first {
		first[i] = 1
	}
	chain.ProcessBlock(first)

	chain.Reset()

	second := make([]float64, 200)
	for i := range second {
		second[i] = 1
	}
	chain.ProcessBlock(second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d: %v != %v after Reset", i, first[i], second[i])
		}
	}
}

func TestZeroPhase_PreservesPeakPosition(t *testing.T) {
	// A smooth low-frequency pulse with a single interior maximum. A causal
	// filter would delay it; the forward-backward pass must not.
	sr := 5000.0
	in := make([]float64, 2000)
	for i := range in {
		d := (float64(i) - 1000) / 150
		in[i] = math.Exp(-d * d)
	}

	out := ZeroPhase(ButterworthLP(70, 4, sr), in)
	if len(out) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(out))
	}

	peak := func(data []float64) int {
		idx := 0
		for i, v := range data {
			if math.Abs(v) > math.Abs(data[idx]) {
				idx = i
			}
		}
		return idx
	}

	pin, pout := peak(in), peak(out)
	if d := pin - pout; d < -1 || d > 1 {
		t.Fatalf("peak moved from %d to %d", pin, pout)
	}
}

func TestZeroPhase_PassbandGainNearUnity(t *testing.T) {
	sr := 5000.0
	in := sine(10, sr, 1, 5000)

	out := ZeroPhase(ButterworthLP(70, 4, sr), in)

	// Compare away from the edges where forward-backward transients live.
	ratio := rms(out[1000:4000]) / rms(in[1000:4000])
	if !almostEqual(ratio, 1, 0.01) {
		t.Fatalf("passband gain %.4f, want ~1", ratio)
	}
}

func TestZeroPhase_InputUntouched(t *testing.T) {
	in := sine(10, 5000, 1, 300)
	orig := make([]float64, len(in))
	copy(orig, in)

	_ = ZeroPhase(ButterworthLP(70, 4, 5000), in)

	for i := range in {
		if in[i] != orig[i] {
			t.Fatalf("input modified at index %d", i)
		}
	}
}

func TestZeroPhase_DegenerateInputs(t *testing.T) {
	if out := ZeroPhase(nil, []float64{1, 2, 3}); len(out) != 3 {
		t.Fatalf("nil coeffs: len=%d, want 3", len(out))
	}

	if out := ZeroPhase(ButterworthLP(70, 4, 5000), nil); len(out) != 0 {
		t.Fatalf("nil data: len=%d, want 0", len(out))
	}
}
