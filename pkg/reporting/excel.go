package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"portfolio-optimizer/internal/analysis"
	apperrors "portfolio-optimizer/internal/errors"
)

// ExcelReporter writes an analysis result to a styled XLSX workbook with
// Summary, Statistics and Simulations sheets.
type ExcelReporter struct {
	headerStyle  int
	percentStyle int
}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteResult writes the workbook to path, creating parent directories
// as needed.
func (r *ExcelReporter) WriteResult(res *analysis.Result, path string) error {
	if res == nil {
		return apperrors.NewInvalidInputError("reporting", "write_xlsx", "result is nil")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
				"failed to create output directory")
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := r.createStyles(f); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
			"failed to create styles")
	}

	f.SetSheetName("Sheet1", "Summary")
	if err := r.writeSummary(f, res); err != nil {
		return err
	}
	if err := r.writeStatistics(f, res); err != nil {
		return err
	}
	if err := r.writeSimulations(f, res); err != nil {
		return err
	}

	idx, err := f.GetSheetIndex("Summary")
	if err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
			"failed to save workbook")
	}
	return nil
}

func (r *ExcelReporter) createStyles(f *excelize.File) error {
	var err error

	r.headerStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	r.percentStyle, err = f.NewStyle(&excelize.Style{
		NumFmt: 10, // 0.00%
	})
	return err
}

func (r *ExcelReporter) writeSummary(f *excelize.File, res *analysis.Result) error {
	sheet := "Summary"

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Assets", len(res.Assets)},
		{"Trials", res.Trials},
		{"Seed", res.Seed},
		{"Risk-Free Rate", res.RiskFreeRate},
		{"Optimal Trial", res.Optimal.Trial},
		{"Expected Return", res.Optimal.Mean},
		{"Volatility", res.Optimal.Sigma},
		{"Sharpe Ratio", res.Optimal.Sharpe},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
				"failed to write summary row")
		}
	}
	f.SetCellStyle(sheet, "A1", "B1", r.headerStyle)

	// Optimal weights below the summary block.
	offset := len(rows) + 2
	cell, _ := excelize.CoordinatesToCellName(1, offset)
	weightHeader := []interface{}{"Asset", "Weight"}
	if err := f.SetSheetRow(sheet, cell, &weightHeader); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
			"failed to write weight header")
	}
	f.SetCellStyle(sheet, cell, fmt.Sprintf("B%d", offset), r.headerStyle)
	for i, asset := range res.Assets {
		row := []interface{}{asset, res.Optimal.Weights[i]}
		cell, _ := excelize.CoordinatesToCellName(1, offset+1+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
				"failed to write weight row")
		}
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", offset+1+i),
			fmt.Sprintf("B%d", offset+1+i), r.percentStyle)
	}

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 14)
	return nil
}

func (r *ExcelReporter) writeStatistics(f *excelize.File, res *analysis.Result) error {
	sheet := "Statistics"
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
			"failed to create statistics sheet")
	}

	header := []interface{}{"Asset", "Mean Return", "Volatility"}
	for _, asset := range res.Assets {
		header = append(header, "Cov "+asset)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
			"failed to write statistics header")
	}
	endCol, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", endCol, r.headerStyle)

	for i, asset := range res.Assets {
		row := []interface{}{asset, res.Means[i], math.Sqrt(res.Covariance[i][i])}
		for j := range res.Assets {
			row = append(row, res.Covariance[i][j])
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
				"failed to write statistics row")
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	return nil
}

func (r *ExcelReporter) writeSimulations(f *excelize.File, res *analysis.Result) error {
	sheet := "Simulations"
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
			"failed to create simulations sheet")
	}

	header := []interface{}{"Trial"}
	for _, asset := range res.Assets {
		header = append(header, asset)
	}
	header = append(header, "Mean", "Sigma", "Sharpe")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
			"failed to write simulations header")
	}
	endCol, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", endCol, r.headerStyle)

	for i, c := range res.Candidates {
		row := []interface{}{c.Trial}
		for _, w := range c.Weights {
			row = append(row, w)
		}
		row = append(row, c.Mean, c.Sigma, c.Sharpe)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_xlsx",
				fmt.Sprintf("failed to write trial %d", c.Trial))
		}
	}
	return nil
}

// WriteResultXLSX is the package-level convenience entry point.
func WriteResultXLSX(res *analysis.Result, path string) error {
	return NewExcelReporter().WriteResult(res, path)
}
