package report

import (
	"bytes"
	"fmt"
	"strings"
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
	ds := &rar.Dataset{Source: "testdata/RAR.mrt", Records: []rar.Observation{
		{LogGbar: -11.0, LogGobs: -10.5},
		{LogGbar: -9.4, LogGobs: -9.0},
		{LogGbar: -8.0, LogGobs: -8.0},
	}}
	return analysis.NewRun("run-1", physics.Standard(), geom, ds)
}

func TestWriteContainsAllSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRun(t)))
	out := buf.String()

	for _, want := range []string{
		"TWO-HORIZON ENTROPY SHARING",
		"Analytical: 1/6 = 0.166667",
		"Numerical:        0.166667",
		"Predicted a₀ = cH₀/6 = 1.0913e-10",
		"Loaded SPARC: 3 data points (testdata/RAR.mrt)",
		"TABLE 1: Model comparison against SPARC RAR",
		"This work: f=a/(a+cH₀/6)",
		"MOND fitted: a₀=1.2e-10",
		"Bare: f=a/(a+cH₀)",
		"TABLE 2: Regime analysis",
		"Deep MOND (g < 3a₀)",
		"Transition (3a₀ < g < 30a₀)",
		"Newtonian (g > 30a₀)",
		"SUMMARY",
		"1/3 from cos²θ mode overlap",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteRegimeCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRun(t)))

	var counts []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "a₀") && (strings.Contains(line, "Deep") || strings.Contains(line, "Transition") || strings.Contains(line, "Newtonian (")) {
			fields := strings.Fields(line)
			counts = append(counts, fields[len(fields)-3])
		}
	}
	assert.Equal(t, []string{"1", "1", "1"}, counts)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("closed pipe") }

func TestWritePropagatesWriterError(t *testing.T) {
	err := Write(failingWriter{}, sampleRun(t))
	assert.EqualError(t, err, "closed pipe")
}

func TestWriteShapeColumns(t *testing.T) {
	run := sampleRun(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, run))
	out := buf.String()

	assert.Contains(t, out, "normal p")
	for i, set := range run.Sets {
		sh := run.Shapes[i]
		assert.NotEqual(t, 0.0, sh.Median, set.Model.Key)
		assert.Contains(t, out, fmt.Sprintf("%45s %+8.4f %+8.4f %+8.4f", set.Model.Label, sh.Q25, sh.Median, sh.Q75))
		assert.Contains(t, out, fmt.Sprintf("%8.3f %9d %9d", sh.NormalP, sh.Outliers, len(set.Fallbacks)))
	}
}

func TestWriteGalaxyCount(t *testing.T) {
	run := sampleRun(t)
	run.Dataset.Galaxies = 153
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, run))

	assert.Contains(t, buf.String(), "Loaded SPARC: 3 data points, 153 galaxies (testdata/RAR.mrt)")
}

func TestDigits(t *testing.T) {
	assert.Equal(t, 15, Digits(1, 1))
	assert.Equal(t, 6, Digits(1.0/6.0, 1.0/6.0+1e-7))
	assert.Equal(t, 0, Digits(0, 3))
}
