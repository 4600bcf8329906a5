package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePriceFile(t *testing.T, dir, symbol, content string) {
	t.Helper()
	path := filepath.Join(dir, symbol+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestCSVProvider_LoadPrices tests loading a clean price file
func TestCSVProvider_LoadPrices(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "AAPL", `date,close
2024-01-02,185.64
2024-01-03,184.25
2024-01-04,181.91
`)

	provider := NewCSVProvider(dir)
	history, err := provider.LoadPrices("AAPL", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", history.Symbol)
	assert.Equal(t, 3, history.Len())
	assert.Equal(t, 185.64, history.Closes[0])
	assert.Equal(t, day("2024-01-04"), history.Dates[2])
}

// TestCSVProvider_SkipsBadRows tests that malformed rows are skipped
// instead of failing the load
func TestCSVProvider_SkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "MSFT", `date,close
2024-01-02,370.87
not-a-date,371.00
2024-01-03,abc
2024-01-04,-5.0
2024-01-05,367.75
`)

	provider := NewCSVProvider(dir)
	history, err := provider.LoadPrices("MSFT", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, 2, history.Len())
	assert.Equal(t, []float64{370.87, 367.75}, history.Closes)
}

// TestCSVProvider_DateRangeFilter tests that rows outside the window are
// excluded
func TestCSVProvider_DateRangeFilter(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "GOOG", `date,close
2023-12-29,140.93
2024-01-02,138.17
2024-01-03,139.61
2024-02-01,141.80
`)

	provider := NewCSVProvider(dir)
	history, err := provider.LoadPrices("GOOG", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, 2, history.Len())
	assert.Equal(t, day("2024-01-02"), history.Dates[0])
	assert.Equal(t, day("2024-01-03"), history.Dates[1])
}

// TestCSVProvider_MissingFile tests the error for an unknown symbol
func TestCSVProvider_MissingFile(t *testing.T) {
	provider := NewCSVProvider(t.TempDir())
	_, err := provider.LoadPrices("NOPE", day("2024-01-01"), day("2024-01-31"))
	assert.Error(t, err)
}

// TestCSVProvider_EmptyWindow tests the error when no rows fall in range
func TestCSVProvider_EmptyWindow(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "AAPL", `date,close
2024-01-02,185.64
`)

	provider := NewCSVProvider(dir)
	_, err := provider.LoadPrices("AAPL", day("2025-01-01"), day("2025-01-31"))
	assert.Error(t, err)
}

// TestCachedProvider tests that repeated loads hit the cache
func TestCachedProvider(t *testing.T) {
	dir := t.TempDir()
	writePriceFile(t, dir, "AAPL", `date,close
2024-01-02,185.64
2024-01-03,184.25
`)

	cached := NewCachedProvider(NewCSVProvider(dir))

	first, err := cached.LoadPrices("AAPL", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Size())

	// Remove the backing file; the cached copy must still be served.
	require.NoError(t, os.Remove(filepath.Join(dir, "AAPL.csv")))
	second, err := cached.LoadPrices("AAPL", day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cached.Clear()
	assert.Equal(t, 0, cached.Size())
}

// TestParseTrailingPeriod tests the period shorthand parser
func TestParseTrailingPeriod(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		ok       bool
	}{
		{"30d", 30 * 24 * time.Hour, true},
		{"26w", 26 * 7 * 24 * time.Hour, true},
		{"2y", 2 * 365 * 24 * time.Hour, true},
		{"", 0, false},
		{"10", 0, false},
		{"d30", 0, false},
		{"-5d", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := ParseTrailingPeriod(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, d)
			}
		})
	}
}
