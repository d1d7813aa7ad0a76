package api

import "errors"

var (
	// ErrNetwork wraps transport failures and unreadable responses from the
	// analysis backend.
	ErrNetwork = errors.New("network error")

	ErrQuoteNotFound = errors.New("quote not found")
)

// AnalysisError is an {"error": "..."} payload returned by the backend.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}
