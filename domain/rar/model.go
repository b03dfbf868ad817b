// Package rar defines the Radial Acceleration Relation model functions and
// the observation types they are evaluated against.
package rar

import (
	"math"

	"sparcrar/domain/physics"
)

// Ratio maps an acceleration to the dimensionless ratio f(a) = m_i/m_g.
type Ratio interface {
	Name() string
	Ratio(a float64) float64
}

// Interpolation is f(a) = a/(a + Scale).
type Interpolation struct {
	Label string
	Scale float64
}

func (i Interpolation) Name() string { return i.Label }

// Ratio returns 0 at a = 0 and lies in [0, 1) for a > 0.
func (i Interpolation) Ratio(a float64) float64 {
	return a / (a + i.Scale)
}

// ThisWork is f(a) = a/(a + cH0/6), with zero free parameters.
func ThisWork(c physics.Constants) Interpolation {
	return Interpolation{Label: "this-work", Scale: c.A0Predicted}
}

// Bare is f(a) = a/(a + cH0), without the geometric factor.
func Bare(c physics.Constants) Interpolation {
	return Interpolation{Label: "bare", Scale: c.CH0}
}

// MONDRatio is the simple interpolating function a/(a + a0) with Milgrom's
// fitted a0. It is only used for plotting; predictions go through MONDSimple.
func MONDRatio(c physics.Constants) Interpolation {
	return Interpolation{Label: "mond", Scale: c.A0MOND}
}

// MONDSimple is the MOND simple interpolation written as a force law,
// g_obs = (g_bar + sqrt(g_bar² + 4·g_bar·a0)) / 2.
func MONDSimple(gbar, a0 float64) float64 {
	return 0.5 * (gbar + math.Sqrt(gbar*gbar+4*gbar*a0))
}
