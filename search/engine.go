package search

import (
	"goal-stock/models"
	"strings"
)

// MaxSuggestions caps every search result list.
const MaxSuggestions = 10

type SearchEngine interface {
	Search(query string) []models.Ticker
	GetBySymbol(symbol string) *models.Ticker
	Len() int
}

// InMemoryEngine scans the catalog linearly. Matches keep catalog order.
type InMemoryEngine struct {
	tickers []models.Ticker
	keys    []string // folded symbols, same index as tickers
}

func NewInMemoryEngine(tickers []models.Ticker) *InMemoryEngine {
	keys := make([]string, len(tickers))
	for i, t := range tickers {
		keys[i] = foldSymbol(t.Symbol)
	}
	return &InMemoryEngine{tickers: tickers, keys: keys}
}

func (e *InMemoryEngine) Search(query string) []models.Ticker {
	if query == "" {
		return nil
	}
	q := foldSymbol(query)

	var results []models.Ticker
	for i, key := range e.keys {
		if strings.Contains(key, q) {
			results = append(results, e.tickers[i])
			if len(results) == MaxSuggestions {
				break
			}
		}
	}
	return results
}

func (e *InMemoryEngine) GetBySymbol(symbol string) *models.Ticker {
	key := foldSymbol(symbol)
	for i := range e.keys {
		if e.keys[i] == key {
			t := e.tickers[i]
			return &t
		}
	}
	return nil
}

func (e *InMemoryEngine) Len() int {
	return len(e.tickers)
}

// foldSymbol is the case fold shared by every engine.
func foldSymbol(s string) string {
	return strings.ToLower(s)
}
