package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the catalog endpoints and the static UI.
func NewRouter(h *Handler, staticDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/autocomplete", h.Autocomplete)
	r.Get("/search", h.Search)
	r.Get("/api/quote", h.GetQuote)

	if staticDir != "" {
		// Serve static files with no-cache headers for development
		fs := http.FileServer(http.Dir(staticDir))
		r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fs.ServeHTTP(w, r)
		}))
	}

	return r
}
