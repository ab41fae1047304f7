package documents

import "errors"

var (
	// ErrDuplicate indicates two records share a doc_id.
	ErrDuplicate = errors.New("duplicate doc_id")
	// ErrMissingID indicates a record without a doc_id.
	ErrMissingID = errors.New("doc_id required")
)
