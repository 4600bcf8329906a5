package returns

import (
	"fmt"
	"math"
	"time"

	apperrors "portfolio-optimizer/internal/errors"
)

const component = "returns"

// Series holds a matrix of periodic returns: one row per time period in
// chronological order, one column per asset. A Series is expected to be
// clean - any period with a missing value must have been dropped by the
// data layer before construction.
type Series struct {
	dates  []time.Time
	assets []string
	data   [][]float64 // periods x assets
}

// NewSeries builds a Series from aligned per-period return rows.
// Asset labels must be unique and every row must have one value per asset.
func NewSeries(dates []time.Time, assets []string, data [][]float64) (*Series, error) {
	if len(assets) == 0 {
		return nil, apperrors.NewInsufficientDataError(component, "NewSeries", "no assets")
	}
	if len(dates) != len(data) {
		return nil, apperrors.Newf(apperrors.KindInvalidInput, component, "NewSeries",
			"%d dates for %d return rows", len(dates), len(data))
	}
	seen := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		if a == "" {
			return nil, apperrors.NewInvalidInputError(component, "NewSeries", "empty asset label")
		}
		if _, dup := seen[a]; dup {
			return nil, apperrors.Newf(apperrors.KindInvalidInput, component, "NewSeries",
				"duplicate asset label %q", a)
		}
		seen[a] = struct{}{}
	}
	for i, row := range data {
		if len(row) != len(assets) {
			return nil, apperrors.Newf(apperrors.KindInvalidInput, component, "NewSeries",
				"row %d has %d values, expected %d", i, len(row), len(assets))
		}
	}
	return &Series{dates: dates, assets: assets, data: data}, nil
}

// Periods returns the number of time periods in the series.
func (s *Series) Periods() int { return len(s.data) }

// NumAssets returns the number of asset columns.
func (s *Series) NumAssets() int { return len(s.assets) }

// Assets returns the asset labels in column order.
func (s *Series) Assets() []string {
	out := make([]string, len(s.assets))
	copy(out, s.assets)
	return out
}

// Dates returns the period timestamps in chronological order.
func (s *Series) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// At returns the return of asset column j in period row i.
func (s *Series) At(i, j int) float64 { return s.data[i][j] }

// Column returns a copy of one asset's return series.
func (s *Series) Column(j int) []float64 {
	out := make([]float64, len(s.data))
	for i := range s.data {
		out[i] = s.data[i][j]
	}
	return out
}

// validate rejects NaN or Inf entries. The estimator's contract assumes a
// clean matrix; a gap that survived the data layer is an input error, not
// something to propagate silently.
func (s *Series) validate() error {
	for i, row := range s.data {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return apperrors.NewInvalidInputError(component, "validate",
					fmt.Sprintf("non-numeric return at period %d, asset %s", i, s.assets[j]))
			}
		}
	}
	return nil
}
