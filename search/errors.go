package search

import "errors"

var (
	// ErrCatalogUnavailable marks a failed catalog load. Autocomplete runs
	// degraded (no suggestions); it is never shown to the user.
	ErrCatalogUnavailable = errors.New("ticker catalog unavailable")

	ErrUnknownEngine = errors.New("unknown search engine")
)
