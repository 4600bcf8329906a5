package data

import (
	"fmt"
	"time"
)

// PriceHistory is one asset's daily closing price series in chronological
// order.
type PriceHistory struct {
	Symbol string
	Dates  []time.Time
	Closes []float64
}

// Len returns the number of price observations.
func (h *PriceHistory) Len() int { return len(h.Dates) }

// Provider loads historical closing prices for one symbol over a date
// range. Implementations handle their own transport (filesystem, HTTP) -
// the analysis core never performs I/O itself.
type Provider interface {
	// LoadPrices loads the closing price series for symbol between start
	// and end inclusive.
	LoadPrices(symbol string, start, end time.Time) (*PriceHistory, error)

	// GetName returns the name of the provider for log and report context.
	GetName() string
}

// ValidateHistory checks the integrity of a loaded price series: positive
// prices, matching slice lengths and chronological order.
func ValidateHistory(h *PriceHistory) error {
	if h == nil || h.Len() == 0 {
		return fmt.Errorf("no price data")
	}
	if len(h.Dates) != len(h.Closes) {
		return fmt.Errorf("%s: %d dates for %d closes", h.Symbol, len(h.Dates), len(h.Closes))
	}
	for i, c := range h.Closes {
		if c <= 0 {
			return fmt.Errorf("%s: non-positive close %.6f at index %d", h.Symbol, c, i)
		}
		if i > 0 && h.Dates[i].Before(h.Dates[i-1]) {
			return fmt.Errorf("%s: dates out of chronological order at index %d", h.Symbol, i)
		}
	}
	return nil
}
