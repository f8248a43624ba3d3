package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent shelf configuration stored as config.toml
// in the .shelf/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version     int               `toml:"version"`
	Corpus      CorpusConfig      `toml:"corpus"`
	Similarity  SimilarityConfig  `toml:"similarity"`
	Graph       GraphConfig       `toml:"graph"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	API         APIConfig         `toml:"api"`
}

// CorpusConfig locates the documents to plan over.
type CorpusConfig struct {
	Dir       string `toml:"dir,omitempty"`
	Extension string `toml:"extension,omitempty"`
}

// SimilarityConfig selects how pairwise similarity is computed.
// Provider is "tfidf" or "embedding". The df and n-gram settings only apply
// to tfidf; Workers only applies to embedding.
type SimilarityConfig struct {
	Provider string  `toml:"provider,omitempty"`
	MinDF    int     `toml:"min_df,omitempty"`
	MaxDF    float64 `toml:"max_df,omitempty"`
	MaxNGram int     `toml:"max_ngram,omitempty"`
	Workers  uint    `toml:"workers,omitempty"`
}

// GraphConfig holds graph construction settings. Policy is "threshold" or
// "topk"; Distance is "angular" or "cosine".
type GraphConfig struct {
	Policy    string  `toml:"policy,omitempty"`
	Threshold float64 `toml:"threshold,omitempty"`
	TopK      int     `toml:"top_k,omitempty"`
	Distance  string  `toml:"distance,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// VectorStoreConfig holds embedding cache settings. Provider is "memory" or
// "sqlite"; Target is the sqlite database path.
type VectorStoreConfig struct {
	Provider string `toml:"provider,omitempty"`
	Target   string `toml:"target,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func intKey(name string, field func(c *Config) *int) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.Itoa(*field(c))
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = n
			return nil
		},
	}
}

func uintKey(name string, field func(c *Config) *uint) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(*field(c)), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = uint(n)
			return nil
		},
	}
}

func floatKey(name string, field func(c *Config) *float64) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.FormatFloat(*field(c), 'g', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = f
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"corpus.dir":       stringKey(func(c *Config) *string { return &c.Corpus.Dir }),
	"corpus.extension": stringKey(func(c *Config) *string { return &c.Corpus.Extension }),

	"similarity.provider":  stringKey(func(c *Config) *string { return &c.Similarity.Provider }),
	"similarity.min_df":    intKey("similarity.min_df", func(c *Config) *int { return &c.Similarity.MinDF }),
	"similarity.max_df":    floatKey("similarity.max_df", func(c *Config) *float64 { return &c.Similarity.MaxDF }),
	"similarity.max_ngram": intKey("similarity.max_ngram", func(c *Config) *int { return &c.Similarity.MaxNGram }),
	"similarity.workers":   uintKey("similarity.workers", func(c *Config) *uint { return &c.Similarity.Workers }),

	"graph.policy":    stringKey(func(c *Config) *string { return &c.Graph.Policy }),
	"graph.threshold": floatKey("graph.threshold", func(c *Config) *float64 { return &c.Graph.Threshold }),
	"graph.top_k":     intKey("graph.top_k", func(c *Config) *int { return &c.Graph.TopK }),
	"graph.distance":  stringKey(func(c *Config) *string { return &c.Graph.Distance }),

	"embedding.provider":   stringKey(func(c *Config) *string { return &c.Embedding.Provider }),
	"embedding.target":     stringKey(func(c *Config) *string { return &c.Embedding.Target }),
	"embedding.model":      stringKey(func(c *Config) *string { return &c.Embedding.Model }),
	"embedding.dimensions": uintKey("embedding.dimensions", func(c *Config) *uint { return &c.Embedding.Dimensions }),

	"vector_store.provider": stringKey(func(c *Config) *string { return &c.VectorStore.Provider }),
	"vector_store.target":   stringKey(func(c *Config) *string { return &c.VectorStore.Target }),

	"api.listen": stringKey(func(c *Config) *string { return &c.API.Listen }),
}
