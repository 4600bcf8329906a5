package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// YahooProvider loads daily closing prices from the Yahoo Finance chart
// API.
type YahooProvider struct {
	client *http.Client
}

// NewYahooProvider creates a Yahoo Finance provider with a bounded request
// timeout.
func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetName returns the name of the data provider
func (p *YahooProvider) GetName() string {
	return "Yahoo Finance"
}

type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// LoadPrices fetches the daily close series for symbol between start and
// end inclusive. Bars with a missing or zero close are dropped.
func (p *YahooProvider) LoadPrices(symbol string, start, end time.Time) (*PriceHistory, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		strings.ToUpper(symbol), start.Unix(), end.AddDate(0, 0, 1).Unix())

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "curl/8")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", symbol, resp.Status)
	}

	var yc yahooChartResp
	if err := json.NewDecoder(resp.Body).Decode(&yc); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", symbol, err)
	}
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no data for %s", symbol)
	}

	ts := yc.Chart.Result[0].Timestamp
	closes := yc.Chart.Result[0].Indicators.Quote[0].Close

	history := &PriceHistory{Symbol: strings.ToUpper(symbol)}
	for i := range ts {
		if i >= len(closes) || closes[i] <= 0 {
			continue
		}
		// Normalize to the UTC calendar day so series from different
		// exchanges align on date intersection.
		day := time.Unix(ts[i], 0).UTC().Truncate(24 * time.Hour)
		if day.Before(start) || day.After(end) {
			continue
		}
		history.Dates = append(history.Dates, day)
		history.Closes = append(history.Closes, closes[i])
	}

	if history.Len() == 0 {
		return nil, fmt.Errorf("no usable bars for %s", symbol)
	}
	if err := ValidateHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}
