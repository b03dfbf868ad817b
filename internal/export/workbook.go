// Package export writes the analysis results to a workbook and an HTML
// summary.
package export

import (
	"github.com/xuri/excelize/v2"

	"sparcrar/internal/analysis"
	"sparcrar/internal/errors"
)

// Output file names.
const (
	WorkbookFile = "sparc_rar_results.xlsx"
	MarkdownFile = "sparc_rar_summary.md"
	HTMLFile     = "sparc_rar_summary.html"
)

// Sheet names, in workbook order.
const (
	SheetSummary   = "Summary"
	SheetModels    = "Models"
	SheetRegimes   = "Regimes"
	SheetResiduals = "Residuals"
)

// WriteWorkbook saves the run as an xlsx workbook at path.
func WriteWorkbook(path string, run *analysis.Run) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.WithCode(errors.CodeExport, err)
	}
	for _, name := range []string{SheetModels, SheetRegimes, SheetResiduals} {
		if _, err := f.NewSheet(name); err != nil {
			return errors.WithCode(errors.CodeExport, err)
		}
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summaryRows(run)},
		{SheetModels, modelRows(run)},
		{SheetRegimes, regimeRows(run)},
		{SheetResiduals, residualRows(run)},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows); err != nil {
			return errors.WithCode(errors.CodeExport, errors.Wrapf(err, "write sheet %s", s.name))
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WithCode(errors.CodeExport, errors.Wrapf(err, "save %s", path))
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func summaryRows(run *analysis.Run) [][]interface{} {
	c := run.Constants
	return [][]interface{}{
		{"Quantity", "Value", "Unit"},
		{"run_id", run.ID, ""},
		{"dataset", run.Dataset.Source, ""},
		{"points", run.Dataset.Len(), ""},
		{"galaxies", run.Dataset.Galaxies, ""},
		{"c", c.C, "m/s"},
		{"H0", c.H0, "1/s"},
		{"cH0", c.CH0, "m/s²"},
		{"a0_predicted", c.A0Predicted, "m/s²"},
		{"a0_mond", c.A0MOND, "m/s²"},
		{"a0_ratio", c.A0Ratio(), ""},
		{"a0_discrepancy", c.A0DiscrepancyPercent(), "%"},
		{"geometric_factor_analytical", run.Geometry.Analytical, ""},
		{"geometric_factor_numerical", run.Geometry.Numerical, ""},
	}
}

func modelRows(run *analysis.Run) [][]interface{} {
	rows := [][]interface{}{{"key", "label", "params", "a0", "mean", "sigma", "q25", "median", "q75", "skewness", "kurtosis", "normal_p", "normal", "outliers", "solver_fallbacks"}}
	for i, set := range run.Sets {
		s, sh := run.Summaries[i], run.Shapes[i]
		rows = append(rows, []interface{}{
			set.Model.Key, set.Model.Label, set.Model.Params, set.Model.A0,
			s.Mean, s.StdDev, sh.Q25, sh.Median, sh.Q75, sh.Skewness, sh.Kurtosis,
			sh.NormalP, sh.IsNormal, sh.Outliers, len(set.Fallbacks),
		})
	}
	return rows
}

func regimeRows(run *analysis.Run) [][]interface{} {
	header := []interface{}{"regime", "n"}
	for _, set := range run.Sets {
		header = append(header, "mean_"+set.Model.Key, "sigma_"+set.Model.Key)
	}
	rows := [][]interface{}{header}
	for _, r := range run.Regimes {
		row := []interface{}{r.Regime.Name, r.N}
		for _, s := range r.Stats {
			row = append(row, s.Mean, s.StdDev)
		}
		rows = append(rows, row)
	}
	return rows
}

func residualRows(run *analysis.Run) [][]interface{} {
	header := []interface{}{"log_gbar", "log_gobs"}
	for _, set := range run.Sets {
		header = append(header, "pred_"+set.Model.Key, "resid_"+set.Model.Key)
	}
	rows := [][]interface{}{header}
	for i, obs := range run.Dataset.Records {
		row := []interface{}{obs.LogGbar, obs.LogGobs}
		for _, set := range run.Sets {
			row = append(row, set.Predicted[i], set.Values[i])
		}
		rows = append(rows, row)
	}
	return rows
}
