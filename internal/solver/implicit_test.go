package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparcrar/domain/physics"
	"sparcrar/domain/rar"
	"sparcrar/internal/numeric"
)

type zeroRatio struct{}

func (zeroRatio) Name() string          { return "zero" }
func (zeroRatio) Ratio(float64) float64 { return 0 }

func TestSolveRoundTrip(t *testing.T) {
	c := physics.Standard()
	models := []rar.Ratio{rar.ThisWork(c), rar.Bare(c)}

	for _, f := range models {
		for e := -13.0; e <= -7.0; e += 0.25 {
			gbar := math.Pow(10, e)
			out := Solve(gbar, f)
			require.False(t, out.Fallback(), "%s at 1e%.2f: %v", f.Name(), e, out.Reason)

			back := f.Ratio(out.Value) * out.Value
			assert.InDelta(t, math.Log10(gbar), math.Log10(back), 1e-8,
				"%s round trip at g_bar=1e%.2f", f.Name(), e)
			assert.GreaterOrEqual(t, out.Value, gbar)
		}
	}
}

func TestSolveNewtonianFastPath(t *testing.T) {
	c := physics.Standard()
	for _, f := range []rar.Ratio{rar.ThisWork(c), rar.Bare(c), zeroRatio{}} {
		for _, gbar := range []float64{1.0000001e-7, 2e-7, 1e-5, 3.7} {
			out := Solve(gbar, f)
			assert.Equal(t, gbar, out.Value)
			assert.Equal(t, PathNewtonian, out.Path)
			assert.Equal(t, gbar, SolveGobs(gbar, f))
		}
	}
}

func TestSolveThresholdIsStrict(t *testing.T) {
	out := Solve(NewtonianThreshold, rar.ThisWork(physics.Standard()))

	assert.Equal(t, PathSolved, out.Path)
	assert.Greater(t, out.Value, NewtonianThreshold)
}

func TestSolveDeepMONDScaling(t *testing.T) {
	c := physics.Standard()
	gbar := 1e-13

	got := SolveGobs(gbar, rar.ThisWork(c))
	// g_bar ≈ g_obs²/a0 when g_obs << a0
	assert.InEpsilon(t, math.Sqrt(gbar*c.A0Predicted), got, 0.05)
}

func TestSolveFallsBackWhenNotBracketed(t *testing.T) {
	out := Solve(1e-11, zeroRatio{})

	assert.True(t, out.Fallback())
	assert.Equal(t, 1e-11, out.Value)
	assert.ErrorIs(t, out.Reason, numeric.ErrNotBracketed)
}

func TestSolveFallsBackOnBadInput(t *testing.T) {
	f := rar.ThisWork(physics.Standard())
	for _, gbar := range []float64{0, -1e-11} {
		out := Solve(gbar, f)
		assert.True(t, out.Fallback())
		assert.Equal(t, gbar, out.Value)
		assert.ErrorIs(t, out.Reason, ErrNonPositive)
	}

	out := Solve(math.NaN(), f)
	assert.True(t, out.Fallback())
	assert.True(t, math.IsNaN(out.Value))
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "solved", PathSolved.String())
	assert.Equal(t, "newtonian", PathNewtonian.String())
	assert.Equal(t, "fallback", PathFallback.String())
}
