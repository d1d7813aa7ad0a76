package search

import (
	"context"
	"fmt"
	"goal-stock/models"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

type EngineKind string

const (
	EngineMemory EngineKind = "memory"
	EngineBleve  EngineKind = "bleve"
)

// Source delivers the ticker list, normally GET /autocomplete.
type Source interface {
	FetchTickers(ctx context.Context) ([]models.Ticker, error)
}

// Catalog is the single owned ticker catalog. It is filled at most once;
// until then, or after a failed load, every search returns nothing.
type Catalog struct {
	source Source
	kind   EngineKind

	group singleflight.Group

	mu      sync.RWMutex
	engine  SearchEngine
	records []models.Ticker
	failed  error // first load failure; the catalog stays degraded
}

func NewCatalog(source Source, kind EngineKind) *Catalog {
	if kind == "" {
		kind = EngineMemory
	}
	return &Catalog{source: source, kind: kind}
}

// NewStaticCatalog builds a catalog from records already in memory.
func NewStaticCatalog(records []models.Ticker, kind EngineKind) *Catalog {
	c := NewCatalog(nil, kind)
	c.install(records)
	return c
}

func NewEngine(kind EngineKind, records []models.Ticker) (SearchEngine, error) {
	switch kind {
	case EngineMemory, "":
		return NewInMemoryEngine(records), nil
	case EngineBleve:
		return NewBleveEngine(records)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}

// Load fetches the ticker list once. Concurrent callers share the same
// request. On failure the catalog stays empty for good and every call
// returns an error wrapping ErrCatalogUnavailable.
func (c *Catalog) Load(ctx context.Context) error {
	if c.loaded() {
		return nil
	}
	if err := c.failure(); err != nil {
		return err
	}
	if c.source == nil {
		return fmt.Errorf("%w: no source configured", ErrCatalogUnavailable)
	}

	_, err, _ := c.group.Do("load", func() (interface{}, error) {
		if c.loaded() {
			return nil, nil
		}
		if err := c.failure(); err != nil {
			return nil, err
		}
		records, err := c.source.FetchTickers(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("ticker catalog unavailable, autocomplete disabled")
			err = fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
			c.mu.Lock()
			c.failed = err
			c.mu.Unlock()
			return nil, err
		}
		c.install(records)
		log.Info().Int("tickers", len(records)).Msg("ticker catalog loaded")
		return nil, nil
	})
	return err
}

func (c *Catalog) install(records []models.Ticker) {
	engine, err := NewEngine(c.kind, records)
	if err != nil {
		log.Warn().Err(err).Str("engine", string(c.kind)).Msg("falling back to in-memory search")
		engine = NewInMemoryEngine(records)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if closer, ok := c.engine.(interface{ Close() error }); ok {
		closer.Close()
	}
	c.engine = engine
	c.records = records
}

func (c *Catalog) failure() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failed
}

func (c *Catalog) loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine != nil
}

// Search returns at most MaxSuggestions tickers whose symbol contains query,
// ignoring case, in catalog order. An empty query matches nothing.
func (c *Catalog) Search(query string) []models.Ticker {
	if query == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.engine == nil {
		return nil
	}
	return c.engine.Search(query)
}

func (c *Catalog) GetBySymbol(symbol string) *models.Ticker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.engine == nil {
		return nil
	}
	return c.engine.GetBySymbol(symbol)
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *Catalog) Empty() bool {
	return c.Len() == 0
}

// Records returns the loaded tickers in catalog order.
func (c *Catalog) Records() []models.Ticker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Ticker, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if closer, ok := c.engine.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
