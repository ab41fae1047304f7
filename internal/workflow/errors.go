package workflow

import (
	"errors"

	"github.com/JaimeStill/docket/internal/routing"
)

var (
	// ErrDocumentNotFound indicates a registry mutation targeted a document
	// that is no longer in the registry.
	ErrDocumentNotFound = errors.New("document not found in registry")
	// ErrNoApprover indicates no roster entry holds the credentialing
	// approval role.
	ErrNoApprover = routing.ErrNoApprover
	// ErrPanic wraps a panic recovered while processing one document.
	ErrPanic = errors.New("workflow panic")
)
