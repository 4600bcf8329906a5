package returns

import (
	"math"

	"gonum.org/v1/gonum/stat"

	apperrors "portfolio-optimizer/internal/errors"
)

// Reporting precision. Means and covariances are rounded once at estimation
// time so repeated runs over the same data always report identical figures.
const (
	meanPrecision = 5
	covPrecision  = 8
)

// Stats bundles the estimated statistics of a returns series: the per-asset
// sample mean vector and the sample covariance matrix, both in series
// column order. Immutable once computed.
type Stats struct {
	Assets []string    `json:"assets"`
	Means  []float64   `json:"means"`
	Cov    [][]float64 `json:"covariance"`
}

// NumAssets returns the dimensionality of the estimate.
func (s *Stats) NumAssets() int { return len(s.Assets) }

// Estimate reduces a clean returns series to its mean vector and sample
// covariance matrix (N-1 denominator). Pure function of its input.
//
// Fails with an INSUFFICIENT_DATA error when the series has fewer than two
// periods or no assets, and with INVALID_INPUT when a NaN or Inf entry
// slipped past the data layer.
func Estimate(series *Series) (*Stats, error) {
	if series == nil {
		return nil, apperrors.NewInvalidInputError(component, "Estimate", "nil series")
	}
	n := series.Periods()
	k := series.NumAssets()
	if k < 1 {
		return nil, apperrors.NewInsufficientDataError(component, "Estimate", "no assets")
	}
	if n < 2 {
		return nil, apperrors.Newf(apperrors.KindInsufficientData, component, "Estimate",
			"%d periods, need at least 2 for sample covariance", n)
	}
	if err := series.validate(); err != nil {
		return nil, err
	}

	cols := make([][]float64, k)
	for j := 0; j < k; j++ {
		cols[j] = series.Column(j)
	}

	means := make([]float64, k)
	for j, col := range cols {
		means[j] = roundTo(stat.Mean(col, nil), meanPrecision)
	}

	cov := make([][]float64, k)
	for i := range cov {
		cov[i] = make([]float64, k)
	}
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			c := roundTo(stat.Covariance(cols[i], cols[j], nil), covPrecision)
			cov[i][j] = c
			cov[j][i] = c
		}
	}

	return &Stats{Assets: series.Assets(), Means: means, Cov: cov}, nil
}

// roundTo rounds x to the given number of decimal digits.
func roundTo(x float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(x*scale) / scale
}
