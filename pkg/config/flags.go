package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/shelf/pkg/dotdir"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --policy
// on both "shelf plan" and "shelf serve").
type Flag struct {
	// Name is the long flag name (e.g. "policy").
	Name string

	// Shorthand is the one-letter short flag (e.g. "p"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "graph.policy").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling the Add*Flag helpers and
// BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagCorpusDir       = "corpus-dir"
	FlagExtension       = "extension"
	FlagSimilarity      = "similarity"
	FlagPolicy          = "policy"
	FlagThreshold       = "threshold"
	FlagTopK            = "top-k"
	FlagDistance        = "distance"
	FlagWorkers         = "workers"
	FlagEmbeddingTgt    = "embedding-target"
	FlagEmbeddingModel  = "embedding-model"
	FlagEmbeddingDims   = "embedding-dimensions"
	FlagVectorStoreProv = "vector-store-provider"
	FlagVectorStoreTgt  = "vector-store-target"
	FlagAPIListen       = "listen"
)

// Registry holds every shelf flag.
var Registry = FlagSet{
	FlagCorpusDir:       {Name: "corpus", Shorthand: "c", ViperKey: "corpus.dir", Description: "Directory of corpus documents"},
	FlagExtension:       {Name: "extension", ViperKey: "corpus.extension", Description: "File extension of corpus documents"},
	FlagSimilarity:      {Name: "similarity", ViperKey: "similarity.provider", Description: "Similarity provider (tfidf, embedding)"},
	FlagPolicy:          {Name: "policy", Shorthand: "p", ViperKey: "graph.policy", Description: "Edge policy (threshold, topk)"},
	FlagThreshold:       {Name: "threshold", Shorthand: "t", ViperKey: "graph.threshold", Description: "Minimum similarity for an edge under the threshold policy"},
	FlagTopK:            {Name: "top-k", Shorthand: "k", ViperKey: "graph.top_k", Description: "Neighbours proposed per item under the topk policy"},
	FlagDistance:        {Name: "distance", ViperKey: "graph.distance", Description: "Similarity to distance transform (angular, cosine)"},
	FlagWorkers:         {Name: "workers", ViperKey: "similarity.workers", Description: "Concurrent embedding requests"},
	FlagEmbeddingTgt:    {Name: "embedding-target", ViperKey: "embedding.target", Description: "Embedding provider URL"},
	FlagEmbeddingModel:  {Name: "embedding-model", ViperKey: "embedding.model", Description: "Embedding model"},
	FlagEmbeddingDims:   {Name: "embedding-dimensions", ViperKey: "embedding.dimensions", Description: "Embedding dimensionality"},
	FlagVectorStoreProv: {Name: "vector-store-provider", ViperKey: "vector_store.provider", Description: "Embedding cache (memory, sqlite)"},
	FlagVectorStoreTgt:  {Name: "vector-store-target", ViperKey: "vector_store.target", Description: "Embedding cache sqlite path"},
	FlagAPIListen:       {Name: "listen", Shorthand: "l", ViperKey: "api.listen", Description: "Address for the API server to listen on"},
}

// GraphFlags are the flags every command that builds a graph registers.
var GraphFlags = []string{
	FlagCorpusDir,
	FlagExtension,
	FlagSimilarity,
	FlagPolicy,
	FlagThreshold,
	FlagTopK,
	FlagDistance,
	FlagWorkers,
	FlagEmbeddingTgt,
	FlagEmbeddingModel,
	FlagEmbeddingDims,
	FlagVectorStoreProv,
	FlagVectorStoreTgt,
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaults().GetUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *int) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaults().GetInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddFloat64Flag registers a float64 flag on cmd from the given FlagSet.
func AddFloat64Flag(cmd *cobra.Command, fs FlagSet, registryKey string, target *float64) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaults().GetFloat64(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().Float64VarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().Float64Var(target, def.Name, defaultVal, def.Description)
	}
}

// GraphFlagValues holds the targets of the graph flags.
type GraphFlagValues struct {
	CorpusDir       string
	Extension       string
	Similarity      string
	Policy          string
	Threshold       float64
	TopK            int
	Distance        string
	Workers         uint
	EmbeddingTarget string
	EmbeddingModel  string
	EmbeddingDims   uint
	VectorStore     string
	VectorStoreTgt  string
}

// AddGraphFlags registers every flag in GraphFlags on cmd.
func AddGraphFlags(cmd *cobra.Command, vals *GraphFlagValues) {
	AddStringFlag(cmd, Registry, FlagCorpusDir, &vals.CorpusDir)
	AddStringFlag(cmd, Registry, FlagExtension, &vals.Extension)
	AddStringFlag(cmd, Registry, FlagSimilarity, &vals.Similarity)
	AddStringFlag(cmd, Registry, FlagPolicy, &vals.Policy)
	AddFloat64Flag(cmd, Registry, FlagThreshold, &vals.Threshold)
	AddIntFlag(cmd, Registry, FlagTopK, &vals.TopK)
	AddStringFlag(cmd, Registry, FlagDistance, &vals.Distance)
	AddUintFlag(cmd, Registry, FlagWorkers, &vals.Workers)
	AddStringFlag(cmd, Registry, FlagEmbeddingTgt, &vals.EmbeddingTarget)
	AddStringFlag(cmd, Registry, FlagEmbeddingModel, &vals.EmbeddingModel)
	AddUintFlag(cmd, Registry, FlagEmbeddingDims, &vals.EmbeddingDims)
	AddStringFlag(cmd, Registry, FlagVectorStoreProv, &vals.VectorStore)
	AddStringFlag(cmd, Registry, FlagVectorStoreTgt, &vals.VectorStoreTgt)
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaults returns a viper holding only the NewDefaultConfig values.
func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}

// ResolveFlags binds the registryKeys flags of cmd into a viper chain rooted
// at configDir and returns the resolved Config together with the .shelf/
// directory it was read from ("" when none exists).
func ResolveFlags(cmd *cobra.Command, configDir string, registryKeys []string) (*Config, string, error) {
	v, err := InitViper(configDir)
	if err != nil {
		return nil, "", err
	}
	BindRegisteredFlags(v, cmd, Registry, registryKeys)

	cfg, err := FromViper(v)
	if err != nil {
		return nil, "", err
	}

	dir, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}
