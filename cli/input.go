package cli

import (
	"fmt"
	"goal-stock/models"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// parseRow splits a --row value of the form TICKER:DATE.
func parseRow(value string) (models.RowEntry, error) {
	ticker, date, ok := strings.Cut(value, ":")
	if !ok {
		return models.RowEntry{}, fmt.Errorf("invalid row %q: want TICKER:DATE", value)
	}
	entry := models.RowEntry{Ticker: strings.TrimSpace(ticker), Date: strings.TrimSpace(date)}
	if entry.Ticker == "" || entry.Date == "" {
		return models.RowEntry{}, fmt.Errorf("invalid row %q: ticker and date are required", value)
	}
	return entry, nil
}

func parseTarget(value string) (decimal.Decimal, error) {
	target, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(value), "%"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid target profit %q: %w", value, err)
	}
	if !target.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("target profit must be positive, got %s", target)
	}
	return target, nil
}

func readUpload(path string) (*models.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &models.Upload{Filename: filepath.Base(path), Data: data}, nil
}
