package analysis

import "math"

// Regime boundaries as multiples of Milgrom's a0.
const (
	TransitionLow  = 3.0
	TransitionHigh = 30.0
)

// Regime is a half-open band [Lower, Upper) of observed acceleration.
type Regime struct {
	Name  string
	Lower float64
	Upper float64
}

// Contains reports whether gobs falls in the band. The last regime is
// unbounded above. NaN belongs to no regime.
func (r Regime) Contains(gobs float64) bool {
	if math.IsNaN(gobs) || gobs < r.Lower {
		return false
	}
	return gobs < r.Upper || math.IsInf(r.Upper, 1)
}

// Regimes splits observed acceleration at 3·a0 and 30·a0.
func Regimes(a0 float64) []Regime {
	return []Regime{
		{Name: "Deep MOND (g < 3a₀)", Lower: math.Inf(-1), Upper: TransitionLow * a0},
		{Name: "Transition (3a₀ < g < 30a₀)", Lower: TransitionLow * a0, Upper: TransitionHigh * a0},
		{Name: "Newtonian (g > 30a₀)", Lower: TransitionHigh * a0, Upper: math.Inf(1)},
	}
}

// Classify returns the index of the regime holding gobs, or -1.
func Classify(regimes []Regime, gobs float64) int {
	for i, r := range regimes {
		if r.Contains(gobs) {
			return i
		}
	}
	return -1
}

// RegimeRow is one line of the regime table. Stats is aligned with the
// residual sets it was built from.
type RegimeRow struct {
	Regime Regime
	N      int
	Stats  []Summary
}

// RegimeTable partitions each residual set by the observed acceleration of
// its points and summarises each partition.
func RegimeTable(gobs []float64, sets []ResidualSet, regimes []Regime) []RegimeRow {
	members := make([][]int, len(regimes))
	for i, g := range gobs {
		if k := Classify(regimes, g); k >= 0 {
			members[k] = append(members[k], i)
		}
	}

	rows := make([]RegimeRow, len(regimes))
	for k, r := range regimes {
		row := RegimeRow{Regime: r, N: len(members[k]), Stats: make([]Summary, len(sets))}
		for j, set := range sets {
			subset := make([]float64, 0, len(members[k]))
			for _, i := range members[k] {
				subset = append(subset, set.Values[i])
			}
			row.Stats[j] = Summarize(subset)
		}
		rows[k] = row
	}
	return rows
}
