package figures

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparcrar/domain/physics"
	"sparcrar/domain/rar"
	"sparcrar/internal/analysis"
)

func sampleRun(t *testing.T) *analysis.Run {
	t.Helper()
	geom, err := physics.VerifyGeometricFactor()
	require.NoError(t, err)

	ds := &rar.Dataset{Source: "synthetic"}
	for i := 0; i < 120; i++ {
		lg := -12.0 + float64(i)*0.03
		jitter := 0.05 * math.Sin(float64(i))
		gobs := rar.MONDSimple(math.Pow(10, lg), physics.MilgromA0)
		ds.Records = append(ds.Records, rar.Observation{LogGbar: lg, LogGobs: math.Log10(gobs) + jitter})
	}
	return analysis.NewRun("figures-test", physics.Standard(), geom, ds)
}

func TestBuildersProducePlots(t *testing.T) {
	run := sampleRun(t)
	for _, fig := range all {
		p, err := fig.build(run)
		require.NoError(t, err, fig.file)
		assert.NotEmpty(t, p.Title.Text, fig.file)
	}
}

func TestRenderWritesAllFiles(t *testing.T) {
	dir := t.TempDir()

	paths, err := NewRenderer(dir, nil).Render(context.Background(), sampleRun(t))
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(dir, FCurvesFile),
		filepath.Join(dir, GeometryFile),
		filepath.Join(dir, SparcRARFile),
		filepath.Join(dir, ResidualsFile),
	}, paths)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(t.TempDir(), nil).Render(ctx, sampleRun(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderFailsOnMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "deeper")

	_, err := NewRenderer(dir, nil).Render(context.Background(), sampleRun(t))
	assert.Error(t, err)
}
