package search

import (
	"fmt"
	"goal-stock/models"
	"regexp"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	bsearch "github.com/blevesearch/bleve/v2/search"
	"github.com/rs/zerolog/log"
)

const (
	fieldSymbolKey = "symbol_key"
	fieldOrder     = "order"
)

// BleveEngine answers the same queries as InMemoryEngine from an in-memory
// bleve index. Document IDs are catalog positions, so hits map straight back
// to the loaded records.
type BleveEngine struct {
	index   bleve.Index
	tickers []models.Ticker
}

func NewBleveEngine(tickers []models.Ticker) (*BleveEngine, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	batch := index.NewBatch()
	for i, t := range tickers {
		doc := map[string]interface{}{
			fieldSymbolKey: foldSymbol(t.Symbol),
			fieldOrder:     float64(i),
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to index %s: %w", t.Symbol, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to commit index batch: %w", err)
	}
	log.Debug().Int("tickers", len(tickers)).Msg("bleve index built")

	return &BleveEngine{index: index, tickers: tickers}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	tickerMapping := bleve.NewDocumentMapping()
	tickerMapping.Dynamic = false

	// Whole lower-cased symbol as a single term so regexp queries see it intact.
	keyFieldMapping := bleve.NewTextFieldMapping()
	keyFieldMapping.Analyzer = keyword.Name
	keyFieldMapping.Store = false
	tickerMapping.AddFieldMappingsAt(fieldSymbolKey, keyFieldMapping)

	orderFieldMapping := bleve.NewNumericFieldMapping()
	orderFieldMapping.Store = false
	orderFieldMapping.DocValues = true
	tickerMapping.AddFieldMappingsAt(fieldOrder, orderFieldMapping)

	indexMapping.DefaultMapping = tickerMapping
	return indexMapping
}

func (e *BleveEngine) Search(query string) []models.Ticker {
	if query == "" {
		return nil
	}

	// vellum regexps are anchored, so the pattern has to cover the whole term.
	q := bleve.NewRegexpQuery(".*" + regexp.QuoteMeta(foldSymbol(query)) + ".*")
	q.SetField(fieldSymbolKey)

	req := bleve.NewSearchRequestOptions(q, MaxSuggestions, 0, false)
	req.SortByCustom(bsearch.SortOrder{
		&bsearch.SortField{Field: fieldOrder, Type: bsearch.SortFieldAsNumber},
	})

	res, err := e.index.Search(req)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("bleve search failed")
		return nil
	}
	return e.collect(res)
}

func (e *BleveEngine) GetBySymbol(symbol string) *models.Ticker {
	q := bleve.NewTermQuery(foldSymbol(symbol))
	q.SetField(fieldSymbolKey)

	req := bleve.NewSearchRequestOptions(q, 1, 0, false)
	res, err := e.index.Search(req)
	if err != nil || len(res.Hits) == 0 {
		return nil
	}
	found := e.collect(res)
	if len(found) == 0 {
		return nil
	}
	return &found[0]
}

func (e *BleveEngine) collect(res *bleve.SearchResult) []models.Ticker {
	var results []models.Ticker
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(e.tickers) {
			continue
		}
		results = append(results, e.tickers[i])
	}
	return results
}

func (e *BleveEngine) Len() int {
	return len(e.tickers)
}

func (e *BleveEngine) Close() error {
	return e.index.Close()
}
