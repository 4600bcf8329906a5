package data

import (
	"fmt"
	"sort"
	"time"

	apperrors "portfolio-optimizer/internal/errors"
	"portfolio-optimizer/internal/returns"
)

const component = "data"

// BuildReturnsSeries aligns the price histories on their common dates and
// converts them to a periodic simple-return series. Any date missing a
// valid price for one or more assets is dropped whole before returns are
// computed, so the resulting matrix has no gaps.
//
// Asset column order follows the order of the histories argument.
func BuildReturnsSeries(histories []*PriceHistory) (*returns.Series, error) {
	if len(histories) == 0 {
		return nil, fmt.Errorf("no price histories provided")
	}

	assets := make([]string, len(histories))
	priceMaps := make([]map[time.Time]float64, len(histories))
	for i, h := range histories {
		if err := ValidateHistory(h); err != nil {
			return nil, err
		}
		assets[i] = h.Symbol
		m := make(map[time.Time]float64, h.Len())
		for j, d := range h.Dates {
			if h.Closes[j] > 0 {
				m[d] = h.Closes[j]
			}
		}
		priceMaps[i] = m
	}

	// Intersection of dates with a valid price for every asset.
	var common []time.Time
	for d := range priceMaps[0] {
		inAll := true
		for _, m := range priceMaps[1:] {
			if _, ok := m[d]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, d)
		}
	}
	if len(common) < 2 {
		return nil, fmt.Errorf("only %d common trading dates across %d assets, need at least 2",
			len(common), len(histories))
	}
	sort.Slice(common, func(i, j int) bool { return common[i].Before(common[j]) })

	// Simple returns between consecutive common dates. The returns series
	// is one row shorter than the price series.
	dates := make([]time.Time, 0, len(common)-1)
	rows := make([][]float64, 0, len(common)-1)
	for t := 1; t < len(common); t++ {
		row := make([]float64, len(histories))
		for i, m := range priceMaps {
			prev := m[common[t-1]]
			curr := m[common[t]]
			row[i] = curr/prev - 1
		}
		dates = append(dates, common[t])
		rows = append(rows, row)
	}

	return returns.NewSeries(dates, assets, rows)
}

// LoadReturnsSeries fetches every symbol through the provider and builds
// the aligned returns series in one step. Failures that originate in this
// layer carry the data error kind so callers can tell an upstream data
// fault apart from their own input mistakes.
func LoadReturnsSeries(provider Provider, symbols []string, start, end time.Time) (*returns.Series, error) {
	histories := make([]*PriceHistory, 0, len(symbols))
	for _, symbol := range symbols {
		h, err := provider.LoadPrices(symbol, start, end)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindData, component, "LoadReturnsSeries",
				fmt.Sprintf("loading %s", symbol))
		}
		histories = append(histories, h)
	}

	series, err := BuildReturnsSeries(histories)
	if err != nil && apperrors.KindOf(err) == "" {
		// Alignment failures over fetched data are data faults; errors that
		// already carry a kind keep it.
		return nil, apperrors.Wrap(err, apperrors.KindData, component, "LoadReturnsSeries",
			"building return series")
	}
	return series, err
}
