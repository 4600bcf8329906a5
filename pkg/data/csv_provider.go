package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const csvDateFormat = "2006-01-02"

// CSVProvider loads closing prices from one CSV file per symbol under a
// root directory: <root>/<SYMBOL>.csv with a header row and date,close
// columns.
type CSVProvider struct {
	root string
}

// NewCSVProvider creates a CSV provider rooted at dir.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{root: dir}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadPrices loads the closing price series for symbol between start and
// end inclusive. Rows with unparsable dates or prices are skipped with a
// warning rather than failing the whole load.
func (p *CSVProvider) LoadPrices(symbol string, start, end time.Time) (*PriceHistory, error) {
	path := filepath.Join(p.root, strings.ToUpper(symbol)+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no price file for %s: %w", symbol, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	history := &PriceHistory{Symbol: strings.ToUpper(symbol)}

	lineNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading %s at line %d: %w", path, lineNum, err)
		}
		lineNum++

		if len(record) < 2 {
			log.Printf("⚠️ Insufficient columns at %s line %d, skipping", path, lineNum)
			continue
		}

		date, err := time.Parse(csvDateFormat, strings.TrimSpace(record[0]))
		if err != nil {
			log.Printf("⚠️ Invalid date %q at %s line %d, skipping: %v", record[0], path, lineNum, err)
			continue
		}

		closePx, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			log.Printf("⚠️ Invalid close %q at %s line %d, skipping: %v", record[1], path, lineNum, err)
			continue
		}
		if closePx <= 0 {
			log.Printf("⚠️ Non-positive close at %s line %d, skipping", path, lineNum)
			continue
		}

		if date.Before(start) || date.After(end) {
			continue
		}

		history.Dates = append(history.Dates, date)
		history.Closes = append(history.Closes, closePx)
	}

	if history.Len() == 0 {
		return nil, fmt.Errorf("no prices for %s between %s and %s",
			symbol, start.Format(csvDateFormat), end.Format(csvDateFormat))
	}
	if err := ValidateHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}
