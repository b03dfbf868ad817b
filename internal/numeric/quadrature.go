package numeric

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	apperrors "sparcrar/internal/errors"
)

const (
	// DefaultQuadTol matches the absolute and relative tolerance commonly
	// used by adaptive quadrature packages (~sqrt of machine epsilon).
	DefaultQuadTol = 1.49e-8
	// legendreNodes is the per-panel Gauss-Legendre order.
	legendreNodes = 10
	maxDepth      = 50
)

var ErrQuadratureDepth = apperrors.New(apperrors.CodeIntegration, "quadrature: maximum subdivision depth reached")

// Integral is the result of an adaptive quadrature.
type Integral struct {
	Value    float64
	AbsError float64
	Panels   int
}

// Integrate computes the integral of f over [a, b] with the default tolerance.
func Integrate(f func(float64) float64, a, b float64) (Integral, error) {
	return Adaptive(f, a, b, DefaultQuadTol)
}

// Adaptive integrates f over [a, b] by recursive bisection. Each panel is
// estimated with a fixed Gauss-Legendre rule and compared against the sum of
// its two halves; a panel is accepted once the two estimates agree within
// max(tol, tol*|estimate|) scaled to the panel width.
func Adaptive(f func(float64) float64, a, b, tol float64) (Integral, error) {
	if a == b {
		return Integral{}, nil
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Integral{}, apperrors.InvalidInput("quadrature: bounds must be finite")
	}
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}

	width := b - a
	var res Integral
	whole := panel(f, a, b)
	if err := refine(f, a, b, whole, tol, width, 0, &res); err != nil {
		return Integral{}, err
	}
	res.Value *= sign
	return res, nil
}

func refine(f func(float64) float64, a, b, whole, tol, width float64, depth int, res *Integral) error {
	mid := 0.5 * (a + b)
	left := panel(f, a, mid)
	right := panel(f, mid, b)
	diff := math.Abs(left + right - whole)

	limit := math.Max(tol, tol*math.Abs(left+right)) * (b - a) / width
	if diff <= limit {
		res.Value += left + right
		res.AbsError += diff
		res.Panels += 2
		return nil
	}
	if depth >= maxDepth {
		return ErrQuadratureDepth
	}
	if err := refine(f, a, mid, left, tol, width, depth+1, res); err != nil {
		return err
	}
	return refine(f, mid, b, right, tol, width, depth+1, res)
}

func panel(f func(float64) float64, a, b float64) float64 {
	return quad.Fixed(f, a, b, legendreNodes, quad.Legendre{}, 0)
}
