// Package embedding scores documents by the cosine similarity of their
// embeddings.
//
// Embeddings are cached in a vector.Driver under the document ID together with
// the SHA-256 of the embedded text, so an unchanged corpus is only embedded
// once per store.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/embeddings"
	"github.com/papercomputeco/shelf/pkg/logger"
	"github.com/papercomputeco/shelf/pkg/simgraph"
	"github.com/papercomputeco/shelf/pkg/similarity"
	"github.com/papercomputeco/shelf/pkg/vector"
)

// Config configures the embedding provider.
type Config struct {
	// Embedder generates document embeddings. Required.
	Embedder embeddings.Embedder

	// VectorDriver caches embeddings. Optional; without it every call embeds
	// the whole corpus.
	VectorDriver vector.Driver

	// NumWorkers is the number of concurrent embedding requests (defaults to 3).
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	Logger *slog.Logger
}

// Provider implements similarity.Provider with embeddings.
type Provider struct {
	config *Config
	logger *slog.Logger
}

// NewProvider returns an embedding provider.
func NewProvider(c *Config) (*Provider, error) {
	if c.Embedder == nil {
		return nil, errors.New("embedding provider requires an embedder")
	}
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}

	return &Provider{
		config: c,
		logger: c.Logger,
	}, nil
}

// Similarities embeds docs (reusing cached embeddings whose text hash still
// matches) and returns their pairwise cosine similarity.
func (p *Provider) Similarities(ctx context.Context, docs []corpus.Document) (simgraph.Matrix, error) {
	vectors := make([][]float32, len(docs))
	hashes := make([]string, len(docs))
	for i, doc := range docs {
		if doc.Index != i {
			return nil, fmt.Errorf("document %s has index %d at position %d", doc.ID, doc.Index, i)
		}
		hashes[i] = TextHash(doc.Text)
	}

	if err := p.loadCached(ctx, docs, hashes, vectors); err != nil {
		return nil, err
	}

	var missing []corpus.Document
	for i, doc := range docs {
		if vectors[i] == nil {
			missing = append(missing, doc)
		}
	}

	p.logger.Info("embedding corpus",
		"documents", len(docs),
		"cached", len(docs)-len(missing),
	)

	if len(missing) > 0 {
		if err := p.embed(ctx, missing, vectors); err != nil {
			return nil, err
		}
		if err := p.store(ctx, missing, hashes, vectors); err != nil {
			return nil, err
		}
	}

	dims := -1
	for i, v := range vectors {
		if dims >= 0 && len(v) != dims {
			return nil, fmt.Errorf("%w: %s has %d dimensions, expected %d",
				vector.ErrDimensions, docs[i].ID, len(v), dims)
		}
		dims = len(v)
	}

	return similarity.CosineMatrix(vectors), nil
}

func (p *Provider) loadCached(ctx context.Context, docs []corpus.Document, hashes []string, vectors [][]float32) error {
	if p.config.VectorDriver == nil || len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	index := make(map[string]int, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		index[doc.ID] = i
	}

	cached, err := p.config.VectorDriver.Get(ctx, ids)
	if err != nil {
		return fmt.Errorf("reading embedding cache: %w", err)
	}

	for _, c := range cached {
		i, ok := index[c.ID]
		if !ok || c.Hash != hashes[i] || len(c.Embedding) == 0 {
			continue
		}
		vectors[i] = c.Embedding
	}
	return nil
}

func (p *Provider) embed(ctx context.Context, docs []corpus.Document, vectors [][]float32) error {
	wp, err := newPool(ctx, p.config, vectors)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if !wp.enqueue(job{doc: doc}) {
			break
		}
	}

	if err := wp.close(); err != nil {
		return fmt.Errorf("%w: %w", vector.ErrEmbedding, err)
	}
	return ctx.Err()
}

func (p *Provider) store(ctx context.Context, docs []corpus.Document, hashes []string, vectors [][]float32) error {
	if p.config.VectorDriver == nil {
		return nil
	}

	out := make([]vector.Document, len(docs))
	for i, doc := range docs {
		out[i] = vector.Document{
			ID:        doc.ID,
			Hash:      hashes[doc.Index],
			Embedding: vectors[doc.Index],
		}
	}

	if err := p.config.VectorDriver.Add(ctx, out); err != nil {
		return fmt.Errorf("writing embedding cache: %w", err)
	}
	return nil
}

// TextHash returns the hex SHA-256 of text.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

var _ similarity.Provider = (*Provider)(nil)
