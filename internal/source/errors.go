package source

import "errors"

var (
	// ErrMissingColumn indicates a CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupportedFormat indicates a policy file extension that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyTable indicates a database table with no matching rows.
	ErrEmptyTable = errors.New("no rows in table")
)
