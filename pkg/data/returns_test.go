package data

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portfolio-optimizer/internal/errors"
)

func history(symbol string, prices map[string]float64) *PriceHistory {
	keys := make([]string, 0, len(prices))
	for d := range prices {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	h := &PriceHistory{Symbol: symbol}
	for _, d := range keys {
		h.Dates = append(h.Dates, day(d))
		h.Closes = append(h.Closes, prices[d])
	}
	return h
}

// TestBuildReturnsSeries_Aligned tests return computation over fully
// aligned histories
func TestBuildReturnsSeries_Aligned(t *testing.T) {
	a := history("AAA", map[string]float64{
		"2024-01-02": 100.0,
		"2024-01-03": 110.0,
		"2024-01-04": 99.0,
	})
	b := history("BBB", map[string]float64{
		"2024-01-02": 50.0,
		"2024-01-03": 50.0,
		"2024-01-04": 55.0,
	})

	series, err := BuildReturnsSeries([]*PriceHistory{a, b})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA", "BBB"}, series.Assets())
	require.Equal(t, 2, series.Periods())

	assert.InDelta(t, 0.10, series.At(0, 0), 1e-12)
	assert.InDelta(t, 0.00, series.At(0, 1), 1e-12)
	assert.InDelta(t, -0.10, series.At(1, 0), 1e-12)
	assert.InDelta(t, 0.10, series.At(1, 1), 1e-12)
}

// TestBuildReturnsSeries_DropsGappedDates tests that a date missing for one
// asset is dropped for all assets
func TestBuildReturnsSeries_DropsGappedDates(t *testing.T) {
	a := history("AAA", map[string]float64{
		"2024-01-02": 100.0,
		"2024-01-03": 110.0,
		"2024-01-04": 99.0,
		"2024-01-05": 105.0,
	})
	b := history("BBB", map[string]float64{
		"2024-01-02": 50.0,
		// 2024-01-03 missing
		"2024-01-04": 55.0,
		"2024-01-05": 60.5,
	})

	series, err := BuildReturnsSeries([]*PriceHistory{a, b})
	require.NoError(t, err)

	// Common dates: 01-02, 01-04, 01-05 -> two return periods.
	require.Equal(t, 2, series.Periods())
	assert.Equal(t, []time.Time{day("2024-01-04"), day("2024-01-05")}, series.Dates())

	// First period spans 01-02 -> 01-04 for both assets.
	assert.InDelta(t, -0.01, series.At(0, 0), 1e-12)
	assert.InDelta(t, 0.10, series.At(0, 1), 1e-12)
}

// TestBuildReturnsSeries_TooFewCommonDates tests the minimum overlap guard
func TestBuildReturnsSeries_TooFewCommonDates(t *testing.T) {
	a := history("AAA", map[string]float64{
		"2024-01-02": 100.0,
		"2024-01-03": 110.0,
	})
	b := history("BBB", map[string]float64{
		"2024-01-03": 50.0,
		"2024-01-04": 51.0,
	})

	_, err := BuildReturnsSeries([]*PriceHistory{a, b})
	assert.Error(t, err)
}

// TestBuildReturnsSeries_Empty tests the empty input guard
func TestBuildReturnsSeries_Empty(t *testing.T) {
	_, err := BuildReturnsSeries(nil)
	assert.Error(t, err)
}

// TestLoadReturnsSeries tests the provider-to-series pipeline
func TestLoadReturnsSeries(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "AAA", `date,close
2024-01-02,100.0
2024-01-03,110.0
2024-01-04,99.0
`)
	writePriceFile(t, dir, "BBB", `date,close
2024-01-02,50.0
2024-01-03,50.0
2024-01-04,55.0
`)

	provider := NewCSVProvider(dir)
	series, err := LoadReturnsSeries(provider, []string{"AAA", "BBB"},
		day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA", "BBB"}, series.Assets())
	assert.Equal(t, 2, series.Periods())
}

type brokenProvider struct{}

func (brokenProvider) LoadPrices(symbol string, _, _ time.Time) (*PriceHistory, error) {
	return nil, errors.New("feed down")
}

func (brokenProvider) GetName() string { return "broken" }

// TestLoadReturnsSeries_ProviderFailure tests that a provider failure
// carries the data error kind
func TestLoadReturnsSeries_ProviderFailure(t *testing.T) {
	_, err := LoadReturnsSeries(brokenProvider{}, []string{"AAA"},
		day("2024-01-01"), day("2024-01-31"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindData))
	assert.Contains(t, err.Error(), "AAA")
}

// TestLoadReturnsSeries_AlignmentFailure tests that insufficient overlap
// across fetched histories carries the data error kind
func TestLoadReturnsSeries_AlignmentFailure(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "AAA", `date,close
2024-01-02,100.0
2024-01-03,110.0
`)
	writePriceFile(t, dir, "BBB", `date,close
2024-01-03,50.0
2024-01-04,51.0
`)

	_, err := LoadReturnsSeries(NewCSVProvider(dir), []string{"AAA", "BBB"},
		day("2024-01-01"), day("2024-01-31"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindData))
}

// TestValidateHistory tests the integrity checks
func TestValidateHistory(t *testing.T) {
	assert.Error(t, ValidateHistory(nil))
	assert.Error(t, ValidateHistory(&PriceHistory{Symbol: "AAA"}))

	assert.Error(t, ValidateHistory(&PriceHistory{
		Symbol: "AAA",
		Dates:  []time.Time{day("2024-01-02")},
		Closes: []float64{-1.0},
	}))

	assert.Error(t, ValidateHistory(&PriceHistory{
		Symbol: "AAA",
		Dates:  []time.Time{day("2024-01-03"), day("2024-01-02")},
		Closes: []float64{100.0, 101.0},
	}))

	assert.NoError(t, ValidateHistory(&PriceHistory{
		Symbol: "AAA",
		Dates:  []time.Time{day("2024-01-02"), day("2024-01-03")},
		Closes: []float64{100.0, 101.0},
	}))
}

// TestFilterTrailing tests the trailing-window filter
func TestFilterTrailing(t *testing.T) {
	h := history("AAA", map[string]float64{
		"2024-01-01": 100.0,
		"2024-01-10": 101.0,
		"2024-01-20": 102.0,
		"2024-01-30": 103.0,
	})

	filtered := FilterTrailing(h, 15*24*time.Hour)
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, day("2024-01-20"), filtered.Dates[0])
	assert.Equal(t, day("2024-01-30"), filtered.Dates[1])

	// A window covering everything keeps everything.
	assert.Equal(t, 4, FilterTrailing(h, 365*24*time.Hour).Len())
}
