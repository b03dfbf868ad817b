// Package mrt reads the SPARC RAR machine-readable table.
package mrt

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"sparcrar/domain/rar"
	"sparcrar/internal/errors"
)

const (
	// HeaderLines is the fixed preamble of RAR.mrt.
	HeaderLines = 13
	// FileName is the bundled dataset name.
	FileName = "RAR.mrt"
	// GalaxyCount is the number of SPARC galaxies contributing to RAR.mrt.
	GalaxyCount = 153

	colLogGbar = 0
	colLogGobs = 2
)

// DefaultCandidates lists <dir>/data/RAR.mrt then <dir>/../data/RAR.mrt.
func DefaultCandidates(dir string) []string {
	return []string{
		filepath.Join(dir, "data", FileName),
		filepath.Join(dir, "..", "data", FileName),
	}
}

// Reader loads the dataset from the first candidate path that exists.
type Reader struct {
	candidates []string
	logger     *zap.Logger
}

// NewReader creates a reader over an ordered list of candidate paths.
func NewReader(candidates []string, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{candidates: candidates, logger: logger}
}

// Resolve returns the first candidate that exists as a regular file.
func (r *Reader) Resolve() (string, error) {
	for _, path := range r.candidates {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		r.logger.Debug("dataset candidate not usable", zap.String("path", path), zap.Error(err))
	}
	return "", errors.Newf(errors.CodeDataNotFound,
		"%s not found; tried: %s", FileName, strings.Join(r.candidates, ", "))
}

// Load resolves and parses the dataset. Any malformed row fails the load.
func (r *Reader) Load() (*rar.Dataset, error) {
	path, err := r.Resolve()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDataNotFound, errors.Wrapf(err, "open %s", path))
	}
	defer f.Close()

	table, err := ParseTable(f, HeaderLines)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	ds, err := FromTable(table)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	ds.Source = path
	ds.Galaxies = GalaxyCount

	r.logger.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("points", ds.Len()),
		zap.Int("galaxies", ds.Galaxies),
		zap.Duration("elapsed", time.Since(start)))
	return ds, nil
}

// ParseTable skips skip lines, then reads whitespace-separated numeric rows.
// Blank lines are ignored; every row must have the same column count.
func ParseTable(src io.Reader, skip int) ([][]float64, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var table [][]float64
	lineNo := 0
	width := -1
	for scanner.Scan() {
		lineNo++
		if lineNo <= skip {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if width == -1 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, errors.Newf(errors.CodeDataParse,
				"line %d: expected %d columns, got %d", lineNo, width, len(fields))
		}

		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Newf(errors.CodeDataParse, "line %d column %d: %q is not numeric", lineNo, i, field)
			}
			row[i] = v
		}
		table = append(table, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithCode(errors.CodeDataParse, err)
	}
	if len(table) == 0 {
		return nil, errors.DataParse("no data rows after header")
	}
	return table, nil
}

// FromTable extracts log10 g_bar (column 0) and log10 g_obs (column 2).
func FromTable(table [][]float64) (*rar.Dataset, error) {
	ds := &rar.Dataset{Records: make([]rar.Observation, 0, len(table))}
	for i, row := range table {
		if len(row) <= colLogGobs {
			return nil, errors.Newf(errors.CodeDataParse, "row %d: need at least %d columns, got %d", i, colLogGobs+1, len(row))
		}
		obs := rar.Observation{LogGbar: row[colLogGbar], LogGobs: row[colLogGobs]}
		if !finite(obs.LogGbar) || !finite(obs.LogGobs) {
			return nil, errors.Newf(errors.CodeDataParse, "row %d: non-finite log acceleration", i)
		}
		ds.Records = append(ds.Records, obs)
	}
	return ds, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
