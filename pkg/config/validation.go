package config

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the configuration before any data is fetched. Validation
// failures are configuration problems, not data problems, so they never
// reach the analysis core.
func (c *Config) Validate() error {
	if len(c.Assets) == 0 {
		return fmt.Errorf("no assets specified")
	}

	seen := make(map[string]struct{}, len(c.Assets))
	for _, a := range c.Assets {
		sym := strings.ToUpper(strings.TrimSpace(a))
		if sym == "" {
			return fmt.Errorf("empty asset symbol")
		}
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("duplicate asset symbol %s", sym)
		}
		seen[sym] = struct{}{}
	}

	if _, _, err := c.Window(); err != nil {
		return err
	}

	if math.IsNaN(c.RiskFreeRate) || math.IsInf(c.RiskFreeRate, 0) {
		return fmt.Errorf("risk-free rate must be a finite number")
	}

	if c.Trials < 0 {
		return fmt.Errorf("trial count must not be negative, got %d", c.Trials)
	}

	switch c.Provider {
	case "csv", "yahoo":
	default:
		return fmt.Errorf("unsupported provider %q (supported: csv, yahoo)", c.Provider)
	}

	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}

	return nil
}

// NormalizeAssets upper-cases and trims the configured symbols in place.
func (c *Config) NormalizeAssets() {
	for i, a := range c.Assets {
		c.Assets[i] = strings.ToUpper(strings.TrimSpace(a))
	}
}
