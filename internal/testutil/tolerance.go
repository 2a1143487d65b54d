package testutil

import (
	"math"
	"testing"
)

// RequireNear fails t when got and want differ by more than eps relative
// to want (absolute when want is zero).
func RequireNear(t *testing.T, got, want, eps float64) {
	t.Helper()

	diff := math.Abs(got - want)
	if want != 0 {
		diff /= math.Abs(want)
	}

	if diff > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, diff, eps)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
