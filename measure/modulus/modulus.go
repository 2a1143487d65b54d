// Package modulus converts a measured fundamental vibration frequency into
// an estimate of Young's modulus using clamped-free (cantilever) beam
// theory.
//
// For a uniform cantilever of length L vibrating in its first transverse
// mode, the natural frequency relates to the flexural rigidity EI through
// the first eigenvalue λ₁ of the clamped-free boundary condition:
//
//	ω = λ₁² · sqrt(E·I / (ρ·A·L⁴))
//
// Solving for E with ω = 2π·f gives the form implemented here.
package modulus

import (
	"errors"
	"fmt"
	"math"
)

// Lambda1 is the first eigenvalue of the clamped-free Euler-Bernoulli
// beam. It is a physical constant of the boundary condition, not a tuning
// parameter.
const Lambda1 = 1.875104

// ErrInvalidGeometry reports a non-positive physical parameter, which
// makes the cantilever formula meaningless.
var ErrInvalidGeometry = errors.New("modulus: invalid geometry")

// Geometry describes the beam cross-section and material. It is constant
// across all trials of a run.
type Geometry struct {
	WidthM      float64
	ThicknessM  float64
	DensityKgM3 float64
}

// Validate returns ErrInvalidGeometry when any parameter is non-positive.
func (g Geometry) Validate() error {
	if g.WidthM <= 0 {
		return fmt.Errorf("%w: width %g m", ErrInvalidGeometry, g.WidthM)
	}

	if g.ThicknessM <= 0 {
		return fmt.Errorf("%w: thickness %g m", ErrInvalidGeometry, g.ThicknessM)
	}

	if g.DensityKgM3 <= 0 {
		return fmt.Errorf("%w: density %g kg/m³", ErrInvalidGeometry, g.DensityKgM3)
	}

	return nil
}

// Area returns the cross-sectional area width·thickness in m².
func (g Geometry) Area() float64 {
	return g.WidthM * g.ThicknessM
}

// MomentOfInertia returns the second moment of area width·thickness³/12
// in m⁴ for bending about the width axis.
func (g Geometry) MomentOfInertia() float64 {
	return g.WidthM * g.ThicknessM * g.ThicknessM * g.ThicknessM / 12
}

// Compute returns Young's modulus in Pa for a cantilever of the given
// length vibrating at frequencyHz in its fundamental mode:
//
//	E = ((2π·f·L²) / λ₁²)² · ρ·A / I
//
// Pure and deterministic. Fails with ErrInvalidGeometry when the geometry,
// length, or frequency is non-positive.
func Compute(frequencyHz, lengthM float64, g Geometry) (float64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	if lengthM <= 0 {
		return 0, fmt.Errorf("%w: length %g m", ErrInvalidGeometry, lengthM)
	}

	if frequencyHz <= 0 {
		return 0, fmt.Errorf("%w: frequency %g Hz", ErrInvalidGeometry, frequencyHz)
	}

	omega := 2 * math.Pi * frequencyHz
	base := omega * lengthM * lengthM / (Lambda1 * Lambda1)

	return base * base * g.DensityKgM3 * g.Area() / g.MomentOfInertia(), nil
}
