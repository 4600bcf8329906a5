package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDefaultConfig tests the defaults
func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultRiskFreeRate, cfg.RiskFreeRate)
	assert.Equal(t, DefaultSeed, cfg.Seed)
	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, DefaultDataRoot, cfg.DataRoot)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultTopN, cfg.TopN)
}

// TestLoadConfig_File tests overlaying a JSON file on the defaults
func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"assets": ["aapl", "msft"],
		"start_date": "2024-01-01",
		"end_date": "2024-06-30",
		"risk_free_rate": 0.0001,
		"seed": 7,
		"trials": 500,
		"provider": "yahoo"
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"aapl", "msft"}, cfg.Assets)
	assert.Equal(t, 0.0001, cfg.RiskFreeRate)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 500, cfg.Trials)
	assert.Equal(t, "yahoo", cfg.Provider)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultTopN, cfg.TopN)
}

// TestLoadConfig_MissingFile tests the error for a nonexistent path
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.json")
	assert.Error(t, err)
}

// TestLoadConfig_BadJSON tests the error for malformed JSON
func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestWindow tests date-range resolution and its defaults
func TestWindow(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.StartDate = "2024-01-01"
	cfg.EndDate = "2024-06-30"

	start, end, err := cfg.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), end)

	// Empty start defaults to one year before end.
	cfg.StartDate = ""
	start, end, err = cfg.Window()
	require.NoError(t, err)
	assert.Equal(t, end.AddDate(-1, 0, 0), start)

	// Inverted range fails.
	cfg.StartDate = "2024-07-01"
	_, _, err = cfg.Window()
	assert.Error(t, err)
}

// TestValidate tests the pre-flight configuration checks
func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := NewDefaultConfig()
		cfg.Assets = []string{"AAPL", "MSFT"}
		return cfg
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no assets", func(c *Config) { c.Assets = nil }},
		{"empty symbol", func(c *Config) { c.Assets = []string{"AAPL", " "} }},
		{"duplicate symbol", func(c *Config) { c.Assets = []string{"AAPL", "aapl"} }},
		{"bad end date", func(c *Config) { c.EndDate = "June 30" }},
		{"negative trials", func(c *Config) { c.Trials = -1 }},
		{"unknown provider", func(c *Config) { c.Provider = "bloomberg" }},
		{"non-positive top_n", func(c *Config) { c.TopN = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestNormalizeAssets tests symbol normalization
func TestNormalizeAssets(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Assets = []string{" aapl ", "Msft"}
	cfg.NormalizeAssets()
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Assets)
}
