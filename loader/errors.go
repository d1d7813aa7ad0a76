package loader

import "errors"

var (
	// ErrImportParse covers unreadable files, unsupported formats and
	// missing Ticker/BuyDate columns. The import is aborted.
	ErrImportParse = errors.New("import parse error")

	// ErrImportEmpty means the file parsed but produced no usable row.
	ErrImportEmpty = errors.New("import produced no rows")
)
