package freq

import (
	"errors"
	"math"
	"testing"
)

func sampled(fn func(t float64) float64, sampleRate float64, length int) (values, times []float64) {
	values = make([]float64, length)
	times = make([]float64, length)

	for i := range values {
		t := float64(i) / sampleRate
		times[i] = t
		values[i] = fn(t)
	}

	return values, times
}

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / want
}

func TestEstimateZeroCross_PureSine(t *testing.T) {
	for _, f0 := range []float64{5, 12.34, 20, 73.2} {
		v, ts := sampled(func(t float64) float64 {
			return math.Sin(2 * math.Pi * f0 * t)
		}, 5000, 5000) // 1 s: at least 4 full periods for every f0

		got, err := EstimateZeroCross(v, ts)
		if err != nil {
			t.Fatalf("f0=%g: unexpected error: %v", f0, err)
		}

		if relErr(got, f0) > 0.01 {
			t.Errorf("f0=%g: estimated %g (rel err %.4f)", f0, got, relErr(got, f0))
		}
	}
}

func TestEstimateZeroCross_DecayingSine(t *testing.T) {
	f0 := 18.5
	v, ts := sampled(func(t float64) float64 {
		return math.Exp(-t/0.3) * math.Sin(2*math.Pi*f0*t)
	}, 5000, 5000)

	got, err := EstimateZeroCross(v, ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if relErr(got, f0) > 0.01 {
		t.Errorf("estimated %g, want %g within 1%%", got, f0)
	}
}

func TestEstimateZeroCross_CoarseSampling(t *testing.T) {
	// Interpolation must recover precision well below the sample spacing:
	// at 100 Hz sampling a 9.7 Hz tone has barely 10 samples per period.
	f0 := 9.7
	v, ts := sampled(func(t float64) float64 {
		return math.Sin(2 * math.Pi * f0 * t)
	}, 100, 100)

	got, err := EstimateZeroCross(v, ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if relErr(got, f0) > 0.01 {
		t.Errorf("estimated %g, want %g within 1%%", got, f0)
	}
}

func TestEstimateZeroCross_ExactZeroSamplesSkipped(t *testing.T) {
	// fs/4 tone sampled exactly on its zeros: 0, 1, 0, -1, ...
	// The zero samples must not produce double-counted crossings.
	pattern := []float64{0, 1, 0, -1}

	var v, ts []float64
	for i := 0; i < 40; i++ {
		v = append(v, pattern[i%4])
		ts = append(ts, float64(i)/100.0)
	}

	got, err := EstimateZeroCross(v, ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if relErr(got, 25) > 1e-9 {
		t.Errorf("estimated %g, want exactly 25", got)
	}
}

func TestEstimateZeroCross_InsufficientCrossings(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(t float64) float64
		length int
	}{
		{"monotonic ramp", func(t float64) float64 { return t }, 100},
		{"constant", func(float64) float64 { return 1 }, 100},
		{"all zero", func(float64) float64 { return 0 }, 100},
		{"half period", func(t float64) float64 { return math.Sin(2 * math.Pi * 1 * t) }, 40},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, ts := sampled(tc.fn, 100, tc.length)

			_, err := EstimateZeroCross(v, ts)
			if !errors.Is(err, ErrInsufficientCrossings) {
				t.Fatalf("err = %v, want ErrInsufficientCrossings", err)
			}
		})
	}
}

func TestEstimateZeroCross_SingleDirectionPairSuffices(t *testing.T) {
	// One full period starting mid-cycle: two rising crossings, one falling.
	f0 := 10.0
	v, ts := sampled(func(t float64) float64 {
		return math.Sin(2*math.Pi*f0*t - math.Pi/2)
	}, 1000, 130) // 1.3 periods

	got, err := EstimateZeroCross(v, ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if relErr(got, f0) > 0.01 {
		t.Errorf("estimated %g, want %g", got, f0)
	}
}

func TestEstimateZeroCross_LengthMismatch(t *testing.T) {
	_, err := EstimateZeroCross([]float64{1, -1, 1}, []float64{0, 1})
	if err == nil {
		t.Fatal("expected error for mismatched slice lengths")
	}
}

func TestEstimateSpectral_PureSine(t *testing.T) {
	f0 := 20.0
	v, _ := sampled(func(t float64) float64 {
		return math.Sin(2 * math.Pi * f0 * t)
	}, 5000, 4096)

	got, err := EstimateSpectral(v, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if relErr(got, f0) > 0.01 {
		t.Errorf("estimated %g, want %g within 1%%", got, f0)
	}
}

func TestEstimateSpectral_AgreesWithZeroCross(t *testing.T) {
	f0 := 31.7
	v, ts := sampled(func(t float64) float64 {
		return math.Exp(-t/0.5) * math.Sin(2*math.Pi*f0*t)
	}, 5000, 4096)

	zc, err := EstimateZeroCross(v, ts)
	if err != nil {
		t.Fatalf("zero-cross error: %v", err)
	}

	sp, err := EstimateSpectral(v, 5000)
	if err != nil {
		t.Fatalf("spectral error: %v", err)
	}

	if math.Abs(zc-sp)/zc > 0.02 {
		t.Errorf("estimators disagree: zero-cross %g, spectral %g", zc, sp)
	}
}

func TestEstimateSpectral_InvalidInputs(t *testing.T) {
	v := []float64{0, 1, 0, -1, 0, 1, 0, -1}

	if _, err := EstimateSpectral(v, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}

	if _, err := EstimateSpectral([]float64{1, 2}, 100); err == nil {
		t.Error("expected error for too-short input")
	}

	if _, err := EstimateSpectral(make([]float64, 64), 100); !errors.Is(err, ErrNoSpectralPeak) {
		t.Error("expected ErrNoSpectralPeak for silent input")
	}
}

func TestParabolicOffset_Bounds(t *testing.T) {
	mag := []float64{1, 5, 1}
	if off := parabolicOffset(mag, 1); off != 0 {
		t.Fatalf("symmetric peak offset = %g, want 0", off)
	}

	if off := parabolicOffset(mag, 0); off != 0 {
		t.Fatalf("edge peak offset = %g, want 0", off)
	}
}
