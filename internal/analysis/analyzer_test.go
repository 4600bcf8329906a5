package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portfolio-optimizer/internal/errors"
	"portfolio-optimizer/internal/returns"
	"portfolio-optimizer/internal/simulation"
)

func testSeries(t *testing.T) *returns.Series {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 5)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}
	series, err := returns.NewSeries(dates, []string{"AAA", "BBB"}, [][]float64{
		{0.010, 0.020},
		{-0.005, 0.012},
		{0.008, -0.004},
		{0.003, 0.015},
		{-0.002, 0.006},
	})
	require.NoError(t, err)
	return series
}

// TestAnalyzer_Run tests the full estimate-then-simulate pipeline
func TestAnalyzer_Run(t *testing.T) {
	analyzer := New(Config{Seed: 7, Trials: 50})

	result, err := analyzer.Run(testSeries(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA", "BBB"}, result.Assets)
	assert.Len(t, result.Means, 2)
	assert.Len(t, result.Covariance, 2)
	assert.Len(t, result.Candidates, 50)
	assert.Equal(t, int64(7), result.Seed)
	assert.Equal(t, 50, result.Trials)
	assert.Equal(t, result.Candidates[result.Optimal.Trial].Sharpe, result.Optimal.Sharpe)
}

// TestAnalyzer_Defaults tests that seed and trial defaults are applied and
// recorded on the result
func TestAnalyzer_Defaults(t *testing.T) {
	analyzer := New(Config{})

	result, err := analyzer.Run(testSeries(t))
	require.NoError(t, err)

	assert.Equal(t, simulation.DefaultSeed, result.Seed)
	assert.Equal(t, simulation.DefaultTrialsPerAsset*2, result.Trials)
	assert.Len(t, result.Candidates, result.Trials)
}

// TestAnalyzer_Reproducible tests that identical configurations reproduce
// the same optimal portfolio
func TestAnalyzer_Reproducible(t *testing.T) {
	first, err := New(Config{Seed: 99}).Run(testSeries(t))
	require.NoError(t, err)

	second, err := New(Config{Seed: 99}).Run(testSeries(t))
	require.NoError(t, err)

	assert.Equal(t, first.Optimal, second.Optimal)
}

// TestAnalyzer_NilSeries tests the nil input guard
func TestAnalyzer_NilSeries(t *testing.T) {
	_, err := New(Config{}).Run(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

// TestAnalyzer_RunWithStats tests simulating against precomputed statistics
func TestAnalyzer_RunWithStats(t *testing.T) {
	stats := &returns.Stats{
		Assets: []string{"AAA", "BBB"},
		Means:  []float64{0.01, 0.02},
		Cov: [][]float64{
			{0.0004, 0.0001},
			{0.0001, 0.0009},
		},
	}

	result, err := New(Config{Seed: 12, Trials: 200}).RunWithStats(stats)
	require.NoError(t, err)

	assert.Len(t, result.Candidates, 200)
	for _, c := range result.Candidates {
		assert.GreaterOrEqual(t, result.Optimal.Sharpe, c.Sharpe)
	}
}

// TestAnalyzer_RunWithStats_Nil tests the nil statistics guard
func TestAnalyzer_RunWithStats_Nil(t *testing.T) {
	_, err := New(Config{}).RunWithStats(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}
