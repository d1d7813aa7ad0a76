package api

import (
	"encoding/json"
	"errors"
	"goal-stock/models"
	"goal-stock/search"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	Catalog *search.Catalog
	Quotes  QuoteFetcher
}

func NewHandler(catalog *search.Catalog, quotes QuoteFetcher) *Handler {
	return &Handler{Catalog: catalog, Quotes: quotes}
}

// Autocomplete serves the whole ticker catalog. A missing or invalid
// tickers file yields an empty list, never an error.
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Records())
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Missing query parameter 'q'", http.StatusBadRequest)
		return
	}

	results := h.Catalog.Search(query)
	if results == nil {
		results = []models.Ticker{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		http.Error(w, "Missing symbol parameter", http.StatusBadRequest)
		return
	}

	q, err := h.Quotes.FetchQuote(r.Context(), strings.ToUpper(symbol))
	switch {
	case errors.Is(err, ErrQuoteNotFound):
		http.Error(w, "Quote not found", http.StatusNotFound)
		return
	case err != nil:
		log.Error().Err(err).Str("symbol", symbol).Msg("quote fetch failed")
		http.Error(w, "Quote provider unavailable", http.StatusBadGateway)
		return
	}

	response := struct {
		*Quote
		Rank int `json:"rank,omitempty"`
	}{Quote: q}
	if t := h.Catalog.GetBySymbol(q.Symbol); t != nil {
		response.Rank = t.Rank
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"tickers": h.Catalog.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}
