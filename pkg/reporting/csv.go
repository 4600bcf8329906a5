package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"portfolio-optimizer/internal/analysis"
	apperrors "portfolio-optimizer/internal/errors"
)

// WriteSimulationsCSV writes the full simulation table to a CSV file,
// one row per trial with the normalized weights and the portfolio
// statistics. Creates parent directories as needed.
func WriteSimulationsCSV(res *analysis.Result, path string) error {
	if res == nil {
		return apperrors.NewInvalidInputError("reporting", "write_csv", "result is nil")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_csv",
				"failed to create output directory")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_csv",
			"failed to create output file")
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"trial"}
	for _, asset := range res.Assets {
		header = append(header, "weight_"+asset)
	}
	header = append(header, "mean", "sigma", "sharpe")
	if err := w.Write(header); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_csv",
			"failed to write header")
	}

	row := make([]string, 0, len(header))
	for _, c := range res.Candidates {
		row = row[:0]
		row = append(row, strconv.Itoa(c.Trial))
		for _, wgt := range c.Weights {
			row = append(row, strconv.FormatFloat(wgt, 'f', 8, 64))
		}
		row = append(row,
			strconv.FormatFloat(c.Mean, 'f', 8, 64),
			strconv.FormatFloat(c.Sigma, 'f', 8, 64),
			strconv.FormatFloat(c.Sharpe, 'f', 6, 64))
		if err := w.Write(row); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_csv",
				fmt.Sprintf("failed to write trial %d", c.Trial))
		}
	}

	// Flush explicitly so buffered-write failures surface to the caller.
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_csv",
			"failed to flush output file")
	}

	return nil
}
