// Package similarityutils builds similarity providers from configuration.
package similarityutils

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/papercomputeco/shelf/pkg/config"
	embeddingutils "github.com/papercomputeco/shelf/pkg/embeddings/utils"
	"github.com/papercomputeco/shelf/pkg/similarity"
	"github.com/papercomputeco/shelf/pkg/similarity/embedding"
	"github.com/papercomputeco/shelf/pkg/similarity/tfidf"
	vectorutils "github.com/papercomputeco/shelf/pkg/vector/utils"
)

const (
	ProviderTFIDF     = "tfidf"
	ProviderEmbedding = "embedding"

	// DefaultCacheFile is the sqlite embedding cache name inside the .shelf/
	// directory when vector_store.target is unset.
	DefaultCacheFile = "embeddings.db"
)

type NewProviderOpts struct {
	Config *config.Config

	// ConfigDir is the resolved .shelf/ directory. May be empty.
	ConfigDir string

	Logger *slog.Logger
}

// NewProvider returns the configured provider and a function that releases
// any resources it holds.
func NewProvider(o *NewProviderOpts) (similarity.Provider, func() error, error) {
	cfg := o.Config
	noop := func() error { return nil }

	switch cfg.Similarity.Provider {
	case ProviderTFIDF, "":
		p, err := tfidf.NewProvider(tfidf.Config{
			MinDF:    cfg.Similarity.MinDF,
			MaxDF:    cfg.Similarity.MaxDF,
			MaxNGram: cfg.Similarity.MaxNGram,
		})
		if err != nil {
			return nil, nil, err
		}
		return p, noop, nil

	case ProviderEmbedding:
		return newEmbeddingProvider(o)

	default:
		return nil, nil, fmt.Errorf("unsupported similarity provider: %s", cfg.Similarity.Provider)
	}
}

func newEmbeddingProvider(o *NewProviderOpts) (similarity.Provider, func() error, error) {
	cfg := o.Config

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
	})
	if err != nil {
		return nil, nil, err
	}

	target := cfg.VectorStore.Target
	if cfg.VectorStore.Provider == vectorutils.ProviderSQLite && target == "" {
		if o.ConfigDir == "" {
			embedder.Close()
			return nil, nil, errors.New("vector_store.target is required for sqlite without a .shelf directory")
		}
		target = filepath.Join(o.ConfigDir, DefaultCacheFile)
	}

	driver, err := vectorutils.NewVectorDriver(&vectorutils.NewVectorDriverOpts{
		ProviderType: cfg.VectorStore.Provider,
		Target:       target,
		Dimensions:   cfg.Embedding.Dimensions,
		Logger:       o.Logger,
	})
	if err != nil {
		embedder.Close()
		return nil, nil, err
	}

	p, err := embedding.NewProvider(&embedding.Config{
		Embedder:     embedder,
		VectorDriver: driver,
		NumWorkers:   cfg.Similarity.Workers,
		Logger:       o.Logger,
	})
	if err != nil {
		driver.Close()
		embedder.Close()
		return nil, nil, err
	}

	closer := func() error {
		return errors.Join(driver.Close(), embedder.Close())
	}
	return p, closer, nil
}
