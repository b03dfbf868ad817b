package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"sparcrar/internal/analysis"
	"sparcrar/internal/errors"
)

// Markdown renders the run summary as a markdown document.
func Markdown(run *analysis.Run) string {
	c := run.Constants
	var b strings.Builder

	fmt.Fprintf(&b, "# SPARC RAR analysis\n\n")
	fmt.Fprintf(&b, "Run `%s` over %d points from `%s`.\n\n", run.ID, run.Dataset.Len(), run.Dataset.Source)

	fmt.Fprintf(&b, "## Constants\n\n")
	fmt.Fprintf(&b, "| quantity | value |\n|---|---|\n")
	fmt.Fprintf(&b, "| cH₀ | %.4e m/s² |\n", c.CH0)
	fmt.Fprintf(&b, "| a₀ predicted (cH₀/6) | %.4e m/s² |\n", c.A0Predicted)
	fmt.Fprintf(&b, "| a₀ MOND | %.4e m/s² |\n", c.A0MOND)
	fmt.Fprintf(&b, "| ratio | %.3f |\n", c.A0Ratio())
	fmt.Fprintf(&b, "| discrepancy | %.1f%% |\n", c.A0DiscrepancyPercent())
	fmt.Fprintf(&b, "| geometric factor (numerical) | %.6f |\n\n", run.Geometry.Numerical)

	fmt.Fprintf(&b, "## Model comparison\n\n")
	fmt.Fprintf(&b, "| model | params | mean [dex] | σ [dex] | a₀ |\n|---|---:|---:|---:|---:|\n")
	for i, set := range run.Sets {
		s := run.Summaries[i]
		fmt.Fprintf(&b, "| %s | %d | %+.4f | %.4f | %.2e |\n", set.Model.Label, set.Model.Params, s.Mean, s.StdDev, set.Model.A0)
	}

	fmt.Fprintf(&b, "\n## Residual distributions\n\n")
	fmt.Fprintf(&b, "| model | Q25 | median | Q75 | skewness | kurtosis | normal p | outliers |\n|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for i, set := range run.Sets {
		sh := run.Shapes[i]
		fmt.Fprintf(&b, "| %s | %+.4f | %+.4f | %+.4f | %+.3f | %.3f | %.3f | %d |\n",
			set.Model.Label, sh.Q25, sh.Median, sh.Q75, sh.Skewness, sh.Kurtosis, sh.NormalP, sh.Outliers)
	}
	tw, mond := run.Index("this-work"), run.Index("mond")
	fmt.Fprintf(&b, "\n## Regimes\n\n")
	fmt.Fprintf(&b, "| regime | N | σ this work | σ MOND |\n|---|---:|---:|---:|\n")
	for _, r := range run.Regimes {
		fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f |\n", r.Regime.Name, r.N, stdOf(r, tw), stdOf(r, mond))
	}
	return b.String()
}

func stdOf(row analysis.RegimeRow, i int) float64 {
	if i < 0 || i >= len(row.Stats) {
		return 0
	}
	return row.Stats[i].StdDev
}

// RenderHTML converts markdown to a complete HTML page.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "SPARC RAR analysis",
	})
	return markdown.Render(doc, renderer)
}

// WriteSummary writes the markdown summary and its HTML rendering.
func WriteSummary(mdPath, htmlPath string, run *analysis.Run) error {
	md := Markdown(run)
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return errors.WithCode(errors.CodeExport, errors.Wrapf(err, "write %s", mdPath))
	}
	if err := os.WriteFile(htmlPath, RenderHTML(md), 0o644); err != nil {
		return errors.WithCode(errors.CodeExport, errors.Wrapf(err, "write %s", htmlPath))
	}
	return nil
}
