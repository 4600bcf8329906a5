package data

import (
	"strconv"
	"strings"
	"time"
)

// ParseTrailingPeriod parses a trailing-window shorthand like "30d", "26w" or
// "2y" into a duration. Returns false for anything it cannot parse.
func ParseTrailingPeriod(s string) (time.Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, false
	}

	day := 24 * time.Hour
	switch s[len(s)-1] {
	case 'd':
		return time.Duration(n) * day, true
	case 'w':
		return time.Duration(n) * 7 * day, true
	case 'y':
		return time.Duration(n) * 365 * day, true
	default:
		return 0, false
	}
}

// FilterTrailing keeps only the observations within the trailing period
// measured back from the most recent date in the history.
func FilterTrailing(h *PriceHistory, period time.Duration) *PriceHistory {
	if h == nil || h.Len() == 0 || period <= 0 {
		return h
	}

	cutoff := h.Dates[h.Len()-1].Add(-period)
	start := 0
	for i, d := range h.Dates {
		if !d.Before(cutoff) {
			start = i
			break
		}
	}

	return &PriceHistory{
		Symbol: h.Symbol,
		Dates:  append([]time.Time(nil), h.Dates[start:]...),
		Closes: append([]float64(nil), h.Closes[start:]...),
	}
}
