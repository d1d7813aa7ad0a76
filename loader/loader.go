package loader

import (
	"encoding/json"
	"fmt"
	"goal-stock/models"
	"os"
	"strings"
)

// LoadTickers reads the autocomplete catalog file (tickers.json): a JSON
// array of {symbol, name, rank}. Entries without a symbol are dropped.
func LoadTickers(filePath string) ([]models.Ticker, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tickers []models.Ticker
	if err := json.NewDecoder(file).Decode(&tickers); err != nil {
		return nil, fmt.Errorf("invalid tickers file %s: %w", filePath, err)
	}

	out := tickers[:0]
	for _, t := range tickers {
		if strings.TrimSpace(t.Symbol) == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
