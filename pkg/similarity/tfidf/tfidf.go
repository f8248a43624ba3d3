// Package tfidf scores documents by the cosine similarity of their TF-IDF
// vectors.
//
// The vectoriser lowercases text, keeps tokens of two or more word
// characters, drops English stop words, then counts 1..MaxNGram word n-grams.
// Terms found in fewer than MinDF documents or in more than MaxDF of all
// documents are pruned. Weights use the smoothed idf ln((1+n)/(1+df))+1 and
// every document vector is L2-normalised.
package tfidf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/simgraph"
)

const (
	// DefaultMinDF is the minimum absolute document frequency of a kept term.
	DefaultMinDF = 2

	// DefaultMaxDF is the maximum document frequency of a kept term, as a
	// proportion of all documents.
	DefaultMaxDF = 0.9

	// DefaultMaxNGram is the longest word n-gram counted.
	DefaultMaxNGram = 2
)

// ErrEmptyVocabulary is returned when pruning leaves no terms.
var ErrEmptyVocabulary = errors.New("empty vocabulary after pruning; try lowering min_df or raising max_df")

// Config configures the vectoriser. Zero values take the defaults.
type Config struct {
	MinDF    int
	MaxDF    float64
	MaxNGram int

	// KeepStopWords disables English stop word removal.
	KeepStopWords bool
}

// Provider implements similarity.Provider with TF-IDF vectors.
type Provider struct {
	config Config
}

// NewProvider returns a TF-IDF provider.
func NewProvider(c Config) (*Provider, error) {
	if c.MinDF == 0 {
		c.MinDF = DefaultMinDF
	}
	if c.MaxDF == 0 {
		c.MaxDF = DefaultMaxDF
	}
	if c.MaxNGram == 0 {
		c.MaxNGram = DefaultMaxNGram
	}

	if c.MinDF < 0 {
		return nil, fmt.Errorf("min_df must be >= 0, got %d", c.MinDF)
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		return nil, fmt.Errorf("max_df must be in (0, 1], got %g", c.MaxDF)
	}
	if c.MaxNGram < 1 {
		return nil, fmt.Errorf("max_ngram must be >= 1, got %d", c.MaxNGram)
	}

	return &Provider{config: c}, nil
}

// Similarities vectorises docs and returns their pairwise cosine similarity.
func (p *Provider) Similarities(ctx context.Context, docs []corpus.Document) (simgraph.Matrix, error) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts[i] = p.termCounts(doc.Text)
		for term := range counts[i] {
			df[term]++
		}
	}

	n := float64(len(docs))
	maxDocs := p.config.MaxDF * n
	idf := make(map[string]float64)
	for term, f := range df {
		if f < p.config.MinDF || float64(f) > maxDocs {
			continue
		}
		idf[term] = math.Log((1+n)/(1+float64(f))) + 1
	}
	if len(idf) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vectors := make([]map[string]float64, len(docs))
	for i, c := range counts {
		vectors[i] = weigh(c, idf)
	}

	m := make(simgraph.Matrix, len(docs))
	for i := range m {
		m[i] = make([]float64, len(docs))
		m[i][i] = 1
	}
	for i := range vectors {
		for j := i + 1; j < len(vectors); j++ {
			s := dot(vectors[i], vectors[j])
			m[i][j] = s
			m[j][i] = s
		}
	}

	return m, nil
}

// termCounts counts the n-grams of text.
func (p *Provider) termCounts(text string) map[string]int {
	tokens := Tokenize(text)
	if !p.config.KeepStopWords {
		kept := tokens[:0]
		for _, t := range tokens {
			if !IsStopWord(t) {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}

	counts := make(map[string]int)
	for size := 1; size <= p.config.MaxNGram; size++ {
		for start := 0; start+size <= len(tokens); start++ {
			counts[strings.Join(tokens[start:start+size], " ")]++
		}
	}
	return counts
}

// weigh returns the L2-normalised tf-idf vector of counts restricted to the
// vocabulary.
func weigh(counts map[string]int, idf map[string]float64) map[string]float64 {
	v := make(map[string]float64)
	var norm float64
	for term, c := range counts {
		w, ok := idf[term]
		if !ok {
			continue
		}
		x := float64(c) * w
		v[term] = x
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for term := range v {
		v[term] /= norm
	}
	return v
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var s float64
	for term, x := range a {
		s += x * b[term]
	}
	// Rounding can push normalised dot products past 1.
	return min(s, 1)
}

// Tokenize lowercases text and splits it into runs of letters, digits and
// underscores, keeping runs of at least two characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
