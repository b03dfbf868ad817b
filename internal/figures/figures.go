// Package figures renders the four analysis figures as PNG files.
package figures

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"sparcrar/domain/physics"
	"sparcrar/domain/rar"
	"sparcrar/internal/analysis"
	"sparcrar/internal/errors"
	"sparcrar/internal/solver"
)

// Output file names.
const (
	FCurvesFile   = "fig_f_curves.png"
	GeometryFile  = "fig_geometry.png"
	SparcRARFile  = "fig_sparc_rar.png"
	ResidualsFile = "fig_residuals.png"

	residualBins = 50
)

var (
	blue      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red       = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	green     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	fadedGray = color.NRGBA{R: 128, G: 128, B: 128, A: 50}
	fadedBlue = color.NRGBA{R: 31, G: 119, B: 180, A: 100}
	fadedRed  = color.NRGBA{R: 214, G: 39, B: 40, A: 100}
	shade     = color.NRGBA{R: 31, G: 119, B: 180, A: 26}
	faintLine = color.NRGBA{A: 80}
)

type figure struct {
	file   string
	width  vg.Length
	height vg.Length
	build  func(run *analysis.Run) (*plot.Plot, error)
}

var all = []figure{
	{FCurvesFile, 8 * vg.Inch, 5 * vg.Inch, FCurves},
	{GeometryFile, 8 * vg.Inch, 5 * vg.Inch, Geometry},
	{SparcRARFile, 8 * vg.Inch, 6 * vg.Inch, SparcRAR},
	{ResidualsFile, 8 * vg.Inch, 5 * vg.Inch, Residuals},
}

// Renderer writes figures into a directory.
type Renderer struct {
	dir    string
	logger *zap.Logger
}

// NewRenderer creates a renderer for dir.
func NewRenderer(dir string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{dir: dir, logger: logger}
}

// Render builds and saves all figures concurrently. It returns the written
// paths in a fixed order.
func (r *Renderer) Render(ctx context.Context, run *analysis.Run) ([]string, error) {
	paths := make([]string, len(all))
	g, ctx := errgroup.WithContext(ctx)
	for i, fig := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := fig.build(run)
			if err != nil {
				return errors.WithCode(errors.CodeRender, errors.Wrapf(err, "build %s", fig.file))
			}
			path := filepath.Join(r.dir, fig.file)
			if err := p.Save(fig.width, fig.height, path); err != nil {
				return errors.WithCode(errors.CodeRender, errors.Wrapf(err, "save %s", path))
			}
			r.logger.Info("figure saved", zap.String("path", path))
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// FCurves plots f(a) for this work, fitted MOND and the bare model.
func FCurves(run *analysis.Run) (*plot.Plot, error) {
	c := run.Constants
	a := floats.LogSpan(make([]float64, 300), 1e-12, 1e-7)

	p := plot.New()
	p.Title.Text = "Inertia modification function"
	p.X.Label.Text = "log₁₀ a [m/s²]"
	p.Y.Label.Text = "f(a) = mᵢ / m_g"
	p.Add(plotter.NewGrid())

	curves := []struct {
		f     rar.Interpolation
		label string
		col   color.Color
		width vg.Length
		dash  []vg.Length
	}{
		{rar.ThisWork(c), fmt.Sprintf("This work: a/(a+cH₀/6), a₀=%.2e", c.A0Predicted), blue, 2.5, nil},
		{rar.MONDRatio(c), "MOND fitted: a/(a+a₀), a₀=1.2e-10", red, 2, []vg.Length{vg.Points(6), vg.Points(3)}},
		{rar.Bare(c), fmt.Sprintf("Bare: a/(a+cH₀), a₀=%.2e", c.CH0), gray, 1.5, []vg.Length{vg.Points(1), vg.Points(2)}},
	}
	for _, cv := range curves {
		xys := make(plotter.XYs, len(a))
		for i, v := range a {
			xys[i] = plotter.XY{X: math.Log10(v), Y: cv.f.Ratio(v)}
		}
		l, err := line(xys, cv.col, cv.width, cv.dash)
		if err != nil {
			return nil, err
		}
		p.Add(l)
		p.Legend.Add(cv.label, l)
	}

	for _, x := range []float64{c.A0Predicted, c.A0MOND} {
		v, err := vertical(math.Log10(x), -0.05, 1.05, faintLine)
		if err != nil {
			return nil, err
		}
		p.Add(v)
	}
	// Add widens the axes to the data, so limits go last.
	p.Y.Min, p.Y.Max = -0.05, 1.05
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// Geometry plots the cos²θ mode overlap with the backward hemisphere shaded.
func Geometry(_ *analysis.Run) (*plot.Plot, error) {
	theta := floats.Span(make([]float64, 200), 0, math.Pi)
	sq := make(plotter.XYs, len(theta))
	abs := make(plotter.XYs, len(theta))
	for i, th := range theta {
		deg := th * 180 / math.Pi
		c := math.Cos(th)
		sq[i] = plotter.XY{X: deg, Y: c * c}
		abs[i] = plotter.XY{X: deg, Y: math.Abs(c)}
	}

	p := plot.New()
	p.Title.Text = "Entanglement mode overlap: planar vs spherical"
	p.X.Label.Text = "θ (degrees from acceleration axis)"
	p.Y.Label.Text = "Competition strength"
	p.Add(plotter.NewGrid())

	hemi, err := plotter.NewPolygon(plotter.XYs{{X: 90, Y: 0}, {X: 180, Y: 0}, {X: 180, Y: 1.05}, {X: 90, Y: 1.05}})
	if err != nil {
		return nil, err
	}
	hemi.Color = shade
	hemi.LineStyle.Width = 0
	p.Add(hemi)
	p.Legend.Add(fmt.Sprintf("backward hemisphere (avg %.4f)", physics.GeometricRatio), hemi)

	l1, err := line(sq, blue, 2, nil)
	if err != nil {
		return nil, err
	}
	l2, err := line(abs, green, 1.5, []vg.Length{vg.Points(6), vg.Points(3)})
	if err != nil {
		return nil, err
	}
	eq, err := vertical(90, 0, 1.05, faintLine)
	if err != nil {
		return nil, err
	}
	p.Add(l1, l2, eq)
	p.Legend.Add("cos²θ (mode overlap)", l1)
	p.Legend.Add("|cosθ|", l2)
	p.Legend.Add("equator", eq)
	p.X.Min, p.X.Max = 0, 180
	p.Y.Min, p.Y.Max = 0, 1.05
	p.Legend.Top = true
	return p, nil
}

// SparcRAR plots the data with the this-work, MOND and Newtonian curves.
func SparcRAR(run *analysis.Run) (*plot.Plot, error) {
	c := run.Constants
	ds := run.Dataset

	pts := make(plotter.XYs, ds.Len())
	for i, r := range ds.Records {
		pts[i] = plotter.XY{X: r.LogGbar, Y: r.LogGobs}
	}

	grid := floats.LogSpan(make([]float64, 200), 1e-13, 1e-8)
	thisWork := rar.ThisWork(c)
	tw := make(plotter.XYs, len(grid))
	mond := make(plotter.XYs, len(grid))
	newton := make(plotter.XYs, len(grid))
	for i, g := range grid {
		x := math.Log10(g)
		tw[i] = plotter.XY{X: x, Y: math.Log10(math.Max(solver.SolveGobs(g, thisWork), analysis.PredictionFloor))}
		mond[i] = plotter.XY{X: x, Y: math.Log10(rar.MONDSimple(g, c.A0MOND))}
		newton[i] = plotter.XY{X: x, Y: x}
	}

	p := plot.New()
	p.Title.Text = "Radial Acceleration Relation"
	p.X.Label.Text = "log₁₀(g_bar / m s⁻²)"
	p.Y.Label.Text = "log₁₀(g_obs / m s⁻²)"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = fadedGray
	scatter.GlyphStyle.Radius = vg.Points(1)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	lTW, err := line(tw, blue, 2.5, nil)
	if err != nil {
		return nil, err
	}
	lMOND, err := line(mond, red, 2, []vg.Length{vg.Points(6), vg.Points(3)})
	if err != nil {
		return nil, err
	}
	lNewton, err := line(newton, faintLine, 1, []vg.Length{vg.Points(1), vg.Points(2)})
	if err != nil {
		return nil, err
	}
	p.Add(scatter, lTW, lMOND, lNewton)

	p.Legend.Add(fmt.Sprintf("SPARC data (%d points)", ds.Len()), scatter)
	p.Legend.Add(fmt.Sprintf("This work, 0 params (σ=%.3f dex)", sigma(run, "this-work")), lTW)
	p.Legend.Add(fmt.Sprintf("MOND fitted (σ=%.3f dex)", sigma(run, "mond")), lMOND)
	p.Legend.Add("Newtonian (g_obs = g_bar)", lNewton)
	p.X.Min, p.X.Max = -12.5, -8.5
	p.Y.Min, p.Y.Max = -12, -8.5
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// Residuals overlays the MOND and this-work residual histograms.
func Residuals(run *analysis.Run) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Residual distributions vs SPARC"
	p.X.Label.Text = "Residual [dex]"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	entries := []struct {
		key   string
		label string
		fill  color.Color
	}{
		{"mond", "MOND fitted", fadedRed},
		{"this-work", "This work (0 params)", fadedBlue},
	}
	maxCount := 0.0
	for _, e := range entries {
		set, sum, ok := run.Set(e.key)
		if !ok || len(set.Values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(set.Values), residualBins)
		if err != nil {
			return nil, err
		}
		h.FillColor = e.fill
		h.LineStyle.Width = 0
		for _, b := range h.Bins {
			maxCount = math.Max(maxCount, b.Weight)
		}
		p.Add(h)
		p.Legend.Add(fmt.Sprintf("%s: σ=%.3f dex", e.label, sum.StdDev), h)
	}

	zero, err := vertical(0, 0, math.Max(maxCount, 1), faintLine)
	if err != nil {
		return nil, err
	}
	p.Add(zero)
	p.Legend.Top = true
	return p, nil
}

func sigma(run *analysis.Run, key string) float64 {
	_, s, _ := run.Set(key)
	return s.StdDev
}

func line(xys plotter.XYs, col color.Color, width vg.Length, dashes []vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = col
	l.LineStyle.Width = vg.Points(float64(width))
	l.LineStyle.Dashes = dashes
	return l, nil
}

func vertical(x, ymin, ymax float64, col color.Color) (*plotter.Line, error) {
	return line(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}}, col, 1, []vg.Length{vg.Points(1), vg.Points(2)})
}
