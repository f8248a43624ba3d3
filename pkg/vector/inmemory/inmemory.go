// Package inmemory provides a map-backed vector.Driver for a single process.
package inmemory

import (
	"context"
	"slices"
	"sync"

	"github.com/papercomputeco/shelf/pkg/vector"
)

// Driver implements vector.Driver in memory.
type Driver struct {
	mu   sync.RWMutex
	docs map[string]vector.Document
}

// NewDriver returns an empty in-memory driver.
func NewDriver() *Driver {
	return &Driver{docs: make(map[string]vector.Document)}
}

// Add stores copies of docs, replacing documents with the same ID.
func (d *Driver) Add(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		doc.Embedding = slices.Clone(doc.Embedding)
		d.docs[doc.ID] = doc
	}
	return nil
}

// Get returns the stored documents for ids, in the order requested.
func (d *Driver) Get(_ context.Context, ids []string) ([]vector.Document, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]vector.Document, 0, len(ids))
	for _, id := range ids {
		doc, ok := d.docs[id]
		if !ok {
			continue
		}
		doc.Embedding = slices.Clone(doc.Embedding)
		out = append(out, doc)
	}
	return out, nil
}

// Len returns the number of stored documents.
func (d *Driver) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.docs)
}

// Close is a no-op.
func (d *Driver) Close() error {
	return nil
}

var _ vector.Driver = (*Driver)(nil)
