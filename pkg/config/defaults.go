package config

const (
	defaultCorpusDir       = "corpus"
	defaultCorpusExtension = ".txt"

	defaultSimilarityProvider = "tfidf"
	defaultMinDF              = 2
	defaultMaxDF              = 0.9
	defaultMaxNGram           = 2
	defaultWorkers            = 3

	defaultGraphPolicy = "threshold"
	defaultThreshold   = 0.1
	defaultTopK        = 3
	defaultDistance    = "angular"

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "nomic-embed-text"
	defaultEmbeddingDimensions = 768

	defaultVectorProvider = "memory"

	defaultAPIListen = ":8082"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Corpus: CorpusConfig{
			Dir:       defaultCorpusDir,
			Extension: defaultCorpusExtension,
		},
		Similarity: SimilarityConfig{
			Provider: defaultSimilarityProvider,
			MinDF:    defaultMinDF,
			MaxDF:    defaultMaxDF,
			MaxNGram: defaultMaxNGram,
			Workers:  defaultWorkers,
		},
		Graph: GraphConfig{
			Policy:    defaultGraphPolicy,
			Threshold: defaultThreshold,
			TopK:      defaultTopK,
			Distance:  defaultDistance,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Target:     defaultEmbeddingTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		VectorStore: VectorStoreConfig{
			Provider: defaultVectorProvider,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
	}
}
