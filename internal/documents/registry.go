package documents

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Registry owns the document set for one run. Records are only mutated
// through its methods and are never removed.
type Registry struct {
	mu    sync.RWMutex
	docs  []Document
	index map[string]int
}

// NewRegistry builds a registry preserving the order of docs.
func NewRegistry(docs []Document) (*Registry, error) {
	r := &Registry{
		docs:  make([]Document, 0, len(docs)),
		index: make(map[string]int, len(docs)),
	}

	for i, d := range docs {
		id := strings.TrimSpace(d.DocID)
		if id == "" {
			return nil, fmt.Errorf("record %d: %w", i+1, ErrMissingID)
		}
		if _, dup := r.index[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, id)
		}
		d.DocID = id
		r.index[id] = len(r.docs)
		r.docs = append(r.docs, d)
	}

	return r, nil
}

// Expiring returns every Active document whose expiry date is on or before
// cutoff, in registry order.
func (r *Registry) Expiring(cutoff time.Time) []Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Document, 0)
	for _, d := range r.docs {
		if d.Status != StatusActive || d.ExpiryDate.IsZero() {
			continue
		}
		if !d.ExpiryDate.After(cutoff) {
			out = append(out, d)
		}
	}
	return out
}

// Find returns a copy of the document with id.
func (r *Registry) Find(id string) (Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Document{}, false
	}
	return r.docs[i], true
}

// UpdateReviewDate sets the review date of id. It reports false when no
// such document exists.
func (r *Registry) UpdateReviewDate(id string, date time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.docs[i].ReviewDate = date
	return true
}

// SetStatus sets the status of id. It reports false when no such document
// exists.
func (r *Registry) SetStatus(id string, status Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.docs[i].Status = status
	return true
}

// All returns a copy of every document in registry order.
func (r *Registry) All() []Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Document, len(r.docs))
	copy(out, r.docs)
	return out
}

// Len returns the number of documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
