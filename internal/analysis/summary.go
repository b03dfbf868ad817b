package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary is the mean and population standard deviation of a residual set.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
}

// Summarize computes mean and population standard deviation. Empty input
// yields zeros; a single value has zero spread.
func Summarize(values []float64) Summary {
	s := Summary{N: len(values)}
	if s.N == 0 {
		return s
	}
	mean, err := stats.Mean(values)
	if err != nil || math.IsNaN(mean) {
		return s
	}
	s.Mean = mean
	if s.N <= 1 {
		return s
	}
	std, err := stats.StandardDeviation(values)
	if err != nil || math.IsNaN(std) {
		return s
	}
	s.StdDev = std
	return s
}
