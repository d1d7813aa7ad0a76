package api

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// Quote is the latest market snapshot for one symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	PreviousClose decimal.Decimal `json:"previousClose"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	MarketTime    time.Time       `json:"marketTime"`
}

type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*Quote, error)
}

// YahooQuotes fetches quotes through finance-go.
type YahooQuotes struct{}

func (YahooQuotes) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, symbol)
	}

	return &Quote{
		Symbol:        q.Symbol,
		Name:          q.ShortName,
		Price:         decimal.NewFromFloat(q.RegularMarketPrice),
		PreviousClose: decimal.NewFromFloat(q.RegularMarketPreviousClose),
		ChangePercent: decimal.NewFromFloat(q.RegularMarketChangePercent).Round(2),
		MarketTime:    time.Unix(int64(q.RegularMarketTime), 0),
	}, nil
}
