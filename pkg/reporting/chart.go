package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	charts "github.com/vicanso/go-charts/v2"

	"portfolio-optimizer/internal/analysis"
	apperrors "portfolio-optimizer/internal/errors"
)

// WriteRiskReturnChart renders the simulated portfolios as a risk/return
// line together with the capital allocation line through the optimal
// portfolio, and writes the PNG to path.
//
// Candidates are sorted by volatility so the x axis is monotonic.
func WriteRiskReturnChart(res *analysis.Result, path string) error {
	if res == nil {
		return apperrors.NewInvalidInputError("reporting", "write_chart", "result is nil")
	}
	if len(res.Candidates) == 0 {
		return apperrors.NewInvalidInputError("reporting", "write_chart", "no candidates to plot")
	}

	ordered := make([]int, len(res.Candidates))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return res.Candidates[ordered[a]].Sigma < res.Candidates[ordered[b]].Sigma
	})

	n := len(ordered)
	xLabels := make([]string, n)
	frontier := make([]float64, n)
	cal := make([]float64, n)
	for i, idx := range ordered {
		c := res.Candidates[idx]
		xLabels[i] = fmt.Sprintf("%.4f", c.Sigma)
		frontier[i] = c.Mean
		if math.IsInf(res.Optimal.Sharpe, 0) {
			cal[i] = res.Optimal.Mean
		} else {
			cal[i] = res.RiskFreeRate + res.Optimal.Sharpe*c.Sigma
		}
	}

	split := n / 8
	if split < 2 {
		split = 2
	}

	seriesList := charts.NewSeriesListDataFromValues([][]float64{frontier, cal}, charts.ChartTypeLine)
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Risk / Return",
			fmt.Sprintf("%d trials • optimal Sharpe %.4f", res.Trials, res.Optimal.Sharpe)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{"Simulated Portfolios", "Capital Allocation Line"}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_chart",
			"failed to render chart")
	}

	buf, err := painter.Bytes()
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_chart",
			"failed to encode chart")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_chart",
				"failed to create output directory")
		}
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.KindData, "reporting", "write_chart",
			"failed to write chart file")
	}
	return nil
}
