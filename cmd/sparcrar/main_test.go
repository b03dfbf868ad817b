package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparcrar/adapters/mrt"
	"sparcrar/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < mrt.HeaderLines; i++ {
		b.WriteString("# header\n")
	}
	b.WriteString("-11.0 0.1 -10.5 0.05\n-9.4 0.1 -9.0 0.05\n-8.0 0.1 -8.0 0.05\n")
	path := filepath.Join(t.TempDir(), "RAR.mrt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestSolveCommand(t *testing.T) {
	out, err := execute(t, "solve", "--gbar", "2e-7")
	require.NoError(t, err)
	assert.Contains(t, out, "path:       newtonian")
	assert.Contains(t, out, "g_obs:      2.000000e-07")
}

func TestSolveCommandUnknownModel(t *testing.T) {
	_, err := execute(t, "solve", "--model", "mond")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestGeometryCommand(t *testing.T) {
	out, err := execute(t, "geometry")
	require.NoError(t, err)
	assert.Contains(t, out, "Numerical:        0.166667")
}

func TestExitMessage(t *testing.T) {
	assert.Equal(t, "error [DATA_NOT_FOUND]: RAR.mrt not found",
		exitMessage(errors.DataNotFound("RAR.mrt not found")))

	_, err := execute(t, "solve", "--gbar", "not-a-number")
	require.Error(t, err)
	assert.False(t, errors.IsAppError(err))
	assert.True(t, strings.HasPrefix(exitMessage(err), "error: "))
}

func TestRootCommandRunsAnalysis(t *testing.T) {
	t.Setenv("RAR_LOG_LEVEL", "error")
	outDir := t.TempDir()

	out, err := execute(t, "--data", writeDataset(t), "--out", outDir, "--no-figures", "--xlsx")
	require.NoError(t, err)

	assert.Contains(t, out, "Loaded SPARC: 3 data points, 153 galaxies")
	assert.Contains(t, out, "TABLE 2: Regime analysis")
	_, err = os.Stat(filepath.Join(outDir, "sparc_rar_results.xlsx"))
	assert.NoError(t, err)
}

func TestRootCommandMissingDataset(t *testing.T) {
	t.Setenv("RAR_LOG_LEVEL", "error")

	out, err := execute(t, "--data", filepath.Join(t.TempDir(), "absent.mrt"), "--out", t.TempDir(), "--no-figures")
	require.Error(t, err)
	assert.Equal(t, errors.CodeDataNotFound, errors.GetCode(err))
	assert.Contains(t, err.Error(), "absent.mrt")
	assert.NotContains(t, out, "TABLE 1")
}
