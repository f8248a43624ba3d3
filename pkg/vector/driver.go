// Package vector provides interfaces and implementations for caching document
// embeddings.
package vector

import "context"

// Document is a cached embedding for one piece of text.
type Document struct {
	// ID is a unique identifier for the document (the corpus item ID).
	ID string

	// Hash is the SHA-256 of the embedded text. A cached embedding is only
	// reused when the hash still matches.
	Hash string

	// Embedding is the vector representation of the document content.
	Embedding []float32
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Add stores documents with their embeddings.
	// If a document with the same ID already exists, implementers should update
	// the document.
	Add(ctx context.Context, docs []Document) error

	// Get retrieves documents by their IDs. Unknown IDs are skipped.
	Get(ctx context.Context, ids []string) ([]Document, error)

	// Close releases any resources held by the driver.
	Close() error
}
