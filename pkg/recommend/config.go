package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/shelf/pkg/config"
	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/distance"
	"github.com/papercomputeco/shelf/pkg/graphcache"
	"github.com/papercomputeco/shelf/pkg/simgraph"
	similarityutils "github.com/papercomputeco/shelf/pkg/similarity/utils"
)

// GraphOptions resolves the graph section of cfg.
func GraphOptions(cfg *config.Config) (simgraph.Options, error) {
	policy, err := simgraph.LookupPolicy(cfg.Graph.Policy, cfg.Graph.Threshold, cfg.Graph.TopK)
	if err != nil {
		return simgraph.Options{}, err
	}
	transform, err := distance.Lookup(cfg.Graph.Distance)
	if err != nil {
		return simgraph.Options{}, err
	}
	return simgraph.Options{Policy: policy, Transform: transform}, nil
}

// FromConfig loads the corpus, computes its similarity matrix with the
// configured provider and returns a Recommender. configDir is the resolved
// .shelf/ directory and may be empty. cache may be nil.
func FromConfig(ctx context.Context, cfg *config.Config, configDir string, cache *graphcache.Cache, logger *slog.Logger) (*Recommender, error) {
	opts, err := GraphOptions(cfg)
	if err != nil {
		return nil, err
	}

	catalog, err := corpus.LoadDir(cfg.Corpus.Dir, cfg.Corpus.Extension)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	logger.Info("corpus loaded",
		"dir", cfg.Corpus.Dir,
		"items", catalog.Len(),
	)

	provider, closer, err := similarityutils.NewProvider(&similarityutils.NewProviderOpts{
		Config:    cfg,
		ConfigDir: configDir,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closer(); err != nil {
			logger.Warn("closing similarity provider", "error", err)
		}
	}()

	m, err := provider.Similarities(ctx, catalog.Documents())
	if err != nil {
		return nil, fmt.Errorf("computing similarities: %w", err)
	}
	logger.Debug("similarity matrix computed",
		"provider", cfg.Similarity.Provider,
		"size", m.Len(),
	)

	return New(Config{
		Catalog: catalog,
		Matrix:  m,
		Options: opts,
		Cache:   cache,
		Logger:  logger,
	})
}
