// Package solver inverts the implicit relation g_bar = f(g_obs)·g_obs.
package solver

import (
	"math"

	"sparcrar/domain/rar"
	"sparcrar/internal/errors"
	"sparcrar/internal/numeric"
)

const (
	// NewtonianThreshold is the g_bar above which f(g_obs) ≈ 1 and the
	// solve is skipped.
	NewtonianThreshold = 1e-7
	// LogTolerance is the absolute root tolerance in log10 space.
	LogTolerance = 1e-8
	// RatioFloor is the smallest f(g_obs) whose log is taken.
	RatioFloor = 1e-15
	// Sentinel is the residual returned below RatioFloor.
	Sentinel = 1e10

	bracketBelow = 1.0
	bracketAbove = 6.0
)

var ErrNonPositive = errors.New(errors.CodeSolver, "g_bar must be positive and finite")

// Path records how an Outcome was produced.
type Path int

const (
	PathSolved Path = iota
	PathNewtonian
	PathFallback
	PathClosedForm
)

func (p Path) String() string {
	switch p {
	case PathSolved:
		return "solved"
	case PathNewtonian:
		return "newtonian"
	case PathFallback:
		return "fallback"
	case PathClosedForm:
		return "closed-form"
	default:
		return "unknown"
	}
}

// Outcome is the full result of one solve. On PathFallback, Value is the
// input g_bar and Reason says why the root search failed.
type Outcome struct {
	Gbar       float64
	Value      float64
	Path       Path
	Reason     error
	Iterations int
}

// Fallback reports whether the solve fell back to g_bar.
func (o Outcome) Fallback() bool { return o.Path == PathFallback }

// Solve inverts g_bar = f(g_obs)·g_obs for g_obs. It never fails: any
// root-finding problem yields an Outcome whose Value is g_bar.
func Solve(gbar float64, f rar.Ratio) Outcome {
	if gbar > NewtonianThreshold {
		return Outcome{Gbar: gbar, Value: gbar, Path: PathNewtonian}
	}
	if !(gbar > 0) || math.IsInf(gbar, 0) {
		return fallback(gbar, ErrNonPositive)
	}

	logGbar := math.Log10(gbar)
	residual := func(logGobs float64) float64 {
		gobs := math.Pow(10, logGobs)
		ratio := f.Ratio(gobs)
		if ratio < RatioFloor {
			return Sentinel
		}
		return logGbar - math.Log10(ratio*gobs)
	}

	root, err := numeric.Brent(residual, logGbar-bracketBelow, logGbar+bracketAbove, LogTolerance)
	if err != nil {
		return fallback(gbar, errors.Wrapf(err, "solve %s at g_bar=%.4e", f.Name(), gbar))
	}
	value := math.Pow(10, root.X)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback(gbar, errors.Newf(errors.CodeSolver, "non-finite root for %s at g_bar=%.4e", f.Name(), gbar))
	}
	return Outcome{Gbar: gbar, Value: value, Path: PathSolved, Iterations: root.Iterations}
}

// SolveGobs is Solve collapsed to its value.
func SolveGobs(gbar float64, f rar.Ratio) float64 {
	return Solve(gbar, f).Value
}

func fallback(gbar float64, reason error) Outcome {
	return Outcome{Gbar: gbar, Value: gbar, Path: PathFallback, Reason: reason}
}
