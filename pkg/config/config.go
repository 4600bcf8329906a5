package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const dateFormat = "2006-01-02"

// Default values
const (
	DefaultRiskFreeRate = 0.0
	DefaultSeed         = int64(42)
	DefaultProvider     = "csv"
	DefaultDataRoot     = "data"
	DefaultOutputDir    = "results"
	DefaultTopN         = 10
)

// Config holds one analysis run's settings: which assets over which window,
// the simulation parameters and where outputs go.
type Config struct {
	Assets       []string `json:"assets"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	RiskFreeRate float64  `json:"risk_free_rate"`
	Seed         int64    `json:"seed"`
	Trials       int      `json:"trials"` // 0 selects the 100-per-asset default

	Provider string `json:"provider"` // csv or yahoo
	DataRoot string `json:"data_root"`

	OutputDir string `json:"output_dir"`
	TopN      int    `json:"top_n"`
}

// NewDefaultConfig returns a Config with every defaultable field filled in.
func NewDefaultConfig() *Config {
	return &Config{
		RiskFreeRate: DefaultRiskFreeRate,
		Seed:         DefaultSeed,
		Provider:     DefaultProvider,
		DataRoot:     DefaultDataRoot,
		OutputDir:    DefaultOutputDir,
		TopN:         DefaultTopN,
	}
}

// LoadConfig starts from defaults, overlays an optional JSON config file
// and validates the result. Command-line overrides are applied by the
// caller between loading and validation via the Apply* helpers.
func LoadConfig(configFile string) (*Config, error) {
	cfg := NewDefaultConfig()

	if configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	}

	return cfg, nil
}

// Window parses the configured date range. An empty end date means today;
// an empty start date means one year before the end.
func (c *Config) Window() (start, end time.Time, err error) {
	end = time.Now().UTC().Truncate(24 * time.Hour)
	if c.EndDate != "" {
		end, err = time.Parse(dateFormat, c.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", c.EndDate, err)
		}
	}

	start = end.AddDate(-1, 0, 0)
	if c.StartDate != "" {
		start, err = time.Parse(dateFormat, c.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
		}
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is not before end date %s",
			start.Format(dateFormat), end.Format(dateFormat))
	}
	return start, end, nil
}
