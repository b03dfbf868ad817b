// Package numeric holds the one-dimensional root finder and the adaptive
// quadrature used by the analysis.
package numeric

import (
	"math"

	apperrors "sparcrar/internal/errors"
)

const (
	// DefaultMaxIter bounds the Brent iteration count.
	DefaultMaxIter = 100
	eps            = 1e-15
)

var (
	ErrNotBracketed  = apperrors.New(apperrors.CodeSolver, "brent: root not bracketed")
	ErrMaxIterations = apperrors.New(apperrors.CodeSolver, "brent: maximum iterations exceeded")
	ErrNaN           = apperrors.New(apperrors.CodeSolver, "brent: function returned NaN")
)

// Root is the result of a bracketed root search.
type Root struct {
	X          float64
	Iterations int
}

// Brent finds a root of f on [a, b] with the Brent-Dekker method. f(a) and
// f(b) must have opposite signs. xtol is the absolute tolerance on x.
func Brent(f func(float64) float64, a, b, xtol float64) (Root, error) {
	return BrentN(f, a, b, xtol, DefaultMaxIter)
}

// BrentN is Brent with an explicit iteration limit.
func BrentN(f func(float64) float64, a, b, xtol float64, maxIter int) (Root, error) {
	fa, fb := f(a), f(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return Root{}, ErrNaN
	}
	if fa == 0 {
		return Root{X: a}, nil
	}
	if fb == 0 {
		return Root{X: b}, nil
	}
	if fa*fb > 0 {
		return Root{}, ErrNotBracketed
	}

	c, fc := a, fa
	d, e := b-a, b-a
	for i := 1; i <= maxIter; i++ {
		if fb*fc > 0 {
			c, fc = a, fa
			d, e = b-a, b-a
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*eps*math.Abs(b) + 0.5*xtol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return Root{X: b, Iterations: i}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a != c && fa != fc {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			} else {
				// secant
				p = 2 * xm * s
				q = 1 - s
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e, d = d, p/q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
		if math.IsNaN(fb) {
			return Root{X: b, Iterations: i}, ErrNaN
		}
	}
	return Root{X: b, Iterations: maxIter}, ErrMaxIterations
}
