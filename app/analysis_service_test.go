package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sparcrar/domain/rar"
	"sparcrar/internal/analysis"
	"sparcrar/internal/errors"
	"sparcrar/internal/export"
)

// Mock implementations for testing
type MockDatasetLoader struct {
	mock.Mock
}

func (m *MockDatasetLoader) Load() (*rar.Dataset, error) {
	args := m.Called()
	ds, _ := args.Get(0).(*rar.Dataset)
	return ds, args.Error(1)
}

type MockFigureRenderer struct {
	mock.Mock
}

func (m *MockFigureRenderer) Render(ctx context.Context, run *analysis.Run) ([]string, error) {
	args := m.Called(ctx, run)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}

func twoRowDataset() *rar.Dataset {
	return &rar.Dataset{Source: "data/RAR.mrt", Records: []rar.Observation{
		{LogGbar: -11.0, LogGobs: -10.5},
		{LogGbar: -8.0, LogGobs: -8.0},
	}}
}

func TestRunEndToEnd(t *testing.T) {
	loader := &MockDatasetLoader{}
	loader.On("Load").Return(twoRowDataset(), nil)
	renderer := &MockFigureRenderer{}
	renderer.On("Render", mock.Anything, mock.AnythingOfType("*analysis.Run")).Return([]string{"fig_f_curves.png"}, nil)

	var out bytes.Buffer
	svc := NewAnalysisService(loader, renderer, nil)
	result, err := svc.Run(context.Background(), AnalysisRequest{RunID: "run-42", OutputDir: t.TempDir()}, &out)
	require.NoError(t, err)

	assert.Equal(t, "run-42", result.Run.ID)
	assert.Equal(t, 2, result.Run.Dataset.Len())
	assert.Len(t, result.Run.Sets, 3)
	assert.Equal(t, []string{"fig_f_curves.png"}, result.Figures)
	assert.Empty(t, result.Exports)
	assert.Contains(t, out.String(), "TABLE 1: Model comparison against SPARC RAR")

	gbar := result.Run.Dataset.Gbar()
	gobs := result.Run.Dataset.Gobs()
	assert.InEpsilon(t, 1e-11, gbar[0], 1e-12)
	assert.InEpsilon(t, 1e-8, gbar[1], 1e-12)
	assert.InEpsilon(t, 3.162e-11, gobs[0], 1e-3)
	assert.InEpsilon(t, 1e-8, gobs[1], 1e-12)

	loader.AssertExpectations(t)
	renderer.AssertExpectations(t)
}

func TestRunMissingDatasetPrintsNothing(t *testing.T) {
	loader := &MockDatasetLoader{}
	loader.On("Load").Return(nil, errors.DataNotFound("RAR.mrt not found; tried: a, b"))
	renderer := &MockFigureRenderer{}

	var out bytes.Buffer
	_, err := NewAnalysisService(loader, renderer, nil).Run(context.Background(), AnalysisRequest{}, &out)

	require.Error(t, err)
	assert.Equal(t, errors.CodeDataNotFound, errors.GetCode(err))
	assert.Contains(t, err.Error(), "tried: a, b")
	assert.Empty(t, out.String())
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestRunSkipsFiguresAndWritesExports(t *testing.T) {
	loader := &MockDatasetLoader{}
	loader.On("Load").Return(twoRowDataset(), nil)
	renderer := &MockFigureRenderer{}
	dir := t.TempDir()

	var out bytes.Buffer
	result, err := NewAnalysisService(loader, renderer, nil).Run(context.Background(), AnalysisRequest{
		OutputDir:   dir,
		SkipFigures: true,
		ExportXLSX:  true,
		ExportHTML:  true,
	}, &out)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Run.ID)
	assert.Equal(t, []string{
		filepath.Join(dir, export.WorkbookFile),
		filepath.Join(dir, export.MarkdownFile),
		filepath.Join(dir, export.HTMLFile),
	}, result.Exports)
	for _, p := range result.Exports {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestRunPropagatesRenderFailure(t *testing.T) {
	loader := &MockDatasetLoader{}
	loader.On("Load").Return(twoRowDataset(), nil)
	renderer := &MockFigureRenderer{}
	renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New(errors.CodeRender, "disk full"))

	_, err := NewAnalysisService(loader, renderer, nil).Run(context.Background(), AnalysisRequest{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeRender, errors.GetCode(err))
}
