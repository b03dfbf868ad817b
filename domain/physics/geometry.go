package physics

import (
	"math"

	"sparcrar/internal/errors"
	"sparcrar/internal/numeric"
)

// GeometryCheck compares the analytical geometric factor with its numerical
// evaluation as a solid-angle average over the backward hemisphere.
type GeometryCheck struct {
	Analytical float64
	Numerical  float64
	AbsError   float64 // quadrature error estimate, before normalisation
}

// Agrees reports whether both values match to the given number of decimals.
func (g GeometryCheck) Agrees(decimals int) bool {
	return math.Abs(g.Analytical-g.Numerical) < 0.5*math.Pow10(-decimals)
}

// ModeOverlap is the cos²θ·sinθ integrand of the backward-hemisphere average.
func ModeOverlap(theta float64) float64 {
	c := math.Cos(theta)
	return c * c * math.Sin(theta)
}

// VerifyGeometricFactor integrates cos²θ·sinθ over θ ∈ [π/2, π], multiplies
// by the 2π azimuthal integral and normalises by 4π.
func VerifyGeometricFactor() (GeometryCheck, error) {
	res, err := numeric.Integrate(ModeOverlap, math.Pi/2, math.Pi)
	if err != nil {
		return GeometryCheck{}, errors.Wrap(err, "geometric factor integration failed")
	}
	return GeometryCheck{
		Analytical: GeometricRatio,
		Numerical:  res.Value * 2 * math.Pi / (4 * math.Pi),
		AbsError:   res.AbsError,
	}, nil
}
