package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Shape describes the distribution of a residual set beyond its first two
// moments.
type Shape struct {
	Median   float64
	Q25      float64
	Q75      float64
	Skewness float64
	Kurtosis float64 // total, not excess
	NormalP  float64
	IsNormal bool
	Outliers int // outside 1.5·IQR
}

// DescribeShape computes quartiles, skewness, kurtosis and a rough
// normality indicator for residuals. Quartiles use the nearest-rank
// definition so that any non-empty input is accepted.
func DescribeShape(values []float64) (Shape, error) {
	var shape Shape
	median, err := stats.Median(values)
	if err != nil {
		return shape, err
	}
	q25, err := stats.PercentileNearestRank(values, 25)
	if err != nil {
		return shape, err
	}
	q75, err := stats.PercentileNearestRank(values, 75)
	if err != nil {
		return shape, err
	}
	shape.Median, shape.Q25, shape.Q75 = median, q25, q75
	shape.Outliers = countOutliers(values, q25, q75)

	sum := Summarize(values)
	if sum.StdDev == 0 {
		shape.NormalP = 1
		return shape, nil
	}
	shape.Skewness = skewness(values, sum.Mean, sum.StdDev)
	shape.Kurtosis = kurtosis(values, sum.Mean, sum.StdDev)

	// combined skewness/kurtosis statistic against chi-squared(2)
	stat := math.Abs(shape.Skewness) + math.Abs(shape.Kurtosis-3)/2
	shape.NormalP = 1 - distuv.ChiSquared{K: 2}.CDF(stat*stat)
	shape.IsNormal = shape.NormalP > 0.05
	return shape, nil
}

// skewness is the adjusted Fisher-Pearson coefficient.
func skewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 {
		return 0
	}
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	return sum / n * math.Sqrt(n*(n-1)) / (n - 2)
}

func kurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 {
		return 3
	}
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	g2 := sum/n - 3
	// bias-corrected sample excess kurtosis (G2)
	excess := ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
	return excess + 3
}

func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lo, hi := q25-1.5*iqr, q75+1.5*iqr
	count := 0
	for _, x := range data {
		if x < lo || x > hi {
			count++
		}
	}
	return count
}
