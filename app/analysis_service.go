package app

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sparcrar/domain/physics"
	"sparcrar/internal/analysis"
	"sparcrar/internal/errors"
	"sparcrar/internal/export"
	"sparcrar/internal/report"
	"sparcrar/ports"
)

// AnalysisService runs the load → compute → print → plot pipeline
type AnalysisService struct {
	loader   ports.DatasetLoaderPort
	renderer ports.FigureRendererPort
	logger   *zap.Logger
}

// AnalysisRequest selects the optional outputs of a run
type AnalysisRequest struct {
	RunID       string // optional, generated if empty
	OutputDir   string
	SkipFigures bool
	ExportXLSX  bool
	ExportHTML  bool
}

// AnalysisResult is the outcome of a completed run
type AnalysisResult struct {
	Run       *analysis.Run
	Figures   []string
	Exports   []string
	RuntimeMs int64
}

// NewAnalysisService creates an analysis service. renderer may be nil when
// figures are never requested.
func NewAnalysisService(loader ports.DatasetLoaderPort, renderer ports.FigureRendererPort, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{loader: loader, renderer: renderer, logger: logger}
}

// Run executes the pipeline and prints the report to out. Nothing is
// printed unless the dataset loads and every model is evaluated.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest, out io.Writer) (*AnalysisResult, error) {
	start := time.Now()
	runID := req.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	logger := s.logger.With(zap.String("run_id", runID))

	constants := physics.Standard()
	geom, err := physics.VerifyGeometricFactor()
	if err != nil {
		return nil, err
	}
	if !geom.Agrees(5) {
		logger.Warn("geometric factor disagreement",
			zap.Float64("analytical", geom.Analytical),
			zap.Float64("numerical", geom.Numerical))
	}

	ds, err := s.loader.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load SPARC dataset")
	}

	logger.Info("computing predictions", zap.Int("points", ds.Len()))
	run := analysis.NewRun(runID, constants, geom, ds)
	for _, set := range run.Sets {
		if len(set.Fallbacks) == 0 {
			continue
		}
		first := set.Fallbacks[0]
		logger.Debug("solver fell back to g_bar",
			zap.String("model", set.Model.Key),
			zap.Int("count", len(set.Fallbacks)),
			zap.Float64("first_gbar", first.Gbar),
			zap.Error(first.Reason))
	}

	if err := report.Write(out, run); err != nil {
		return nil, errors.Wrap(err, "failed to write report")
	}

	result := &AnalysisResult{Run: run}
	if !req.SkipFigures && s.renderer != nil {
		logger.Info("generating figures", zap.String("dir", req.OutputDir))
		paths, err := s.renderer.Render(ctx, run)
		if err != nil {
			return nil, err
		}
		result.Figures = paths
	}

	if req.ExportXLSX {
		path := filepath.Join(req.OutputDir, export.WorkbookFile)
		if err := export.WriteWorkbook(path, run); err != nil {
			return nil, err
		}
		result.Exports = append(result.Exports, path)
	}
	if req.ExportHTML {
		mdPath := filepath.Join(req.OutputDir, export.MarkdownFile)
		htmlPath := filepath.Join(req.OutputDir, export.HTMLFile)
		if err := export.WriteSummary(mdPath, htmlPath, run); err != nil {
			return nil, err
		}
		result.Exports = append(result.Exports, mdPath, htmlPath)
	}

	result.RuntimeMs = time.Since(start).Milliseconds()
	logger.Info("analysis complete",
		zap.Int("figures", len(result.Figures)),
		zap.Int("exports", len(result.Exports)),
		zap.Int64("runtime_ms", result.RuntimeMs))
	return result, nil
}
