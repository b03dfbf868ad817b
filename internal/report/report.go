// Package report renders the plain-text analysis report.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"sparcrar/internal/analysis"
)

const rule = 70

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) banner(title string) {
	p.printf("\n%s\n%s\n%s\n", strings.Repeat("=", rule), title, strings.Repeat("=", rule))
}

// Write prints the full report for run to w.
func Write(w io.Writer, run *analysis.Run) error {
	p := &printer{w: w}
	c := run.Constants

	p.printf("%s\nTWO-HORIZON ENTROPY SHARING — SPARC RAR ANALYSIS\n%s\n", strings.Repeat("=", rule), strings.Repeat("=", rule))
	p.printf("\ncH₀ = %.4e m/s²\n", c.CH0)
	p.printf("a₀_MOND = %.1e m/s²\n", c.A0MOND)

	p.printf("\n--- Geometric Factor ---\n")
	p.printf("Analytical: 1/6 = %.6f\n", run.Geometry.Analytical)
	p.printf("Numerical:        %.6f\n", run.Geometry.Numerical)
	p.printf("Agreement:        %d decimals\n", Digits(run.Geometry.Analytical, run.Geometry.Numerical))

	p.printf("\nPredicted a₀ = cH₀/6 = %.4e m/s²\n", c.A0Predicted)
	p.printf("Milgrom's a₀ =         %.4e m/s²\n", c.A0MOND)
	p.printf("Ratio:                  %.3f\n", c.A0Ratio())
	p.printf("Discrepancy:            %.1f%%\n", c.A0DiscrepancyPercent())

	if n := run.Dataset.Galaxies; n > 0 {
		p.printf("\nLoaded SPARC: %d data points, %d galaxies (%s)\n", run.Dataset.Len(), n, run.Dataset.Source)
	} else {
		p.printf("\nLoaded SPARC: %d data points (%s)\n", run.Dataset.Len(), run.Dataset.Source)
	}

	writeModelTable(p, run)
	writeRegimeTable(p, run)
	writeShapes(p, run)
	writeSummary(p, run)
	return p.err
}

func writeModelTable(p *printer, run *analysis.Run) {
	p.banner("TABLE 1: Model comparison against SPARC RAR")
	p.printf("\n%45s %6s %8s %8s %12s\n", "Model", "params", "mean", "σ", "a₀")
	p.printf("%s\n", strings.Repeat("-", 85))
	for i, set := range run.Sets {
		s := run.Summaries[i]
		p.printf("%45s %6d %+8.4f %8.4f %12s\n",
			set.Model.Label, set.Model.Params, s.Mean, s.StdDev, fmt.Sprintf("%.2e", set.Model.A0))
	}
}

func writeRegimeTable(p *printer, run *analysis.Run) {
	tw, mond := run.Index("this-work"), run.Index("mond")

	p.banner("TABLE 2: Regime analysis")
	p.printf("\n%35s %6s %8s %8s\n", "Regime", "N", "σ_this", "σ_MOND")
	p.printf("%s\n", strings.Repeat("-", 65))
	for _, row := range run.Regimes {
		p.printf("%35s %6d %8.3f %8.3f\n", row.Regime.Name, row.N, stdAt(row, tw), stdAt(row, mond))
	}
}

func stdAt(row analysis.RegimeRow, i int) float64 {
	if i < 0 || i >= len(row.Stats) {
		return 0
	}
	return row.Stats[i].StdDev
}

func writeShapes(p *printer, run *analysis.Run) {
	p.banner("Residual distributions")
	p.printf("\n%45s %8s %8s %8s %8s %8s %8s %9s %9s\n",
		"Model", "Q25", "median", "Q75", "skew", "kurt", "normal p", "outliers", "fallbacks")
	p.printf("%s\n", strings.Repeat("-", 119))
	for i, set := range run.Sets {
		sh := run.Shapes[i]
		p.printf("%45s %+8.4f %+8.4f %+8.4f %+8.3f %8.3f %8.3f %9d %9d\n",
			set.Model.Label, sh.Q25, sh.Median, sh.Q75, sh.Skewness, sh.Kurtosis, sh.NormalP, sh.Outliers, len(set.Fallbacks))
	}
}

func writeSummary(p *printer, run *analysis.Run) {
	c := run.Constants
	_, tw, _ := run.Set("this-work")
	_, mond, _ := run.Set("mond")

	p.banner("SUMMARY")
	p.printf("\n  Geometric factor:  ∫_backward cos²θ dΩ/(4π) = 1/6\n")
	p.printf("  Predicted a₀:      cH₀/6 = %.4e m/s²\n", c.A0Predicted)
	p.printf("  Milgrom's a₀:              %.4e m/s²\n", c.A0MOND)
	p.printf("  Discrepancy:                %.1f%%\n", c.A0DiscrepancyPercent())
	p.printf("\n  SPARC σ (this work):       %.4f dex  (0 free parameters)\n", tw.StdDev)
	p.printf("  SPARC σ (MOND fitted):     %.4f dex  (1 free parameter)\n", mond.StdDev)
	p.printf("  Mean residual (this work):  %+.4f dex\n", tw.Mean)
	p.printf("\n  The factor 1/6 = (1/2) × (1/3):\n")
	p.printf("    1/2 from backward hemisphere (Unruh trace direction)\n")
	p.printf("    1/3 from cos²θ mode overlap (planar vs spherical entanglement)\n\n")
}

// Digits returns how many decimals two values agree to, capped at 15.
func Digits(a, b float64) int {
	d := math.Abs(a - b)
	if d == 0 {
		return 15
	}
	n := int(math.Floor(-math.Log10(2 * d)))
	if n < 0 {
		return 0
	}
	if n > 15 {
		return 15
	}
	return n
}
