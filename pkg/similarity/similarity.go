// Package similarity produces the pairwise similarity matrix the graph
// builder consumes.
package similarity

import (
	"context"
	"math"

	"github.com/papercomputeco/shelf/pkg/corpus"
	"github.com/papercomputeco/shelf/pkg/simgraph"
)

// Provider scores every pair of documents.
type Provider interface {
	// Similarities returns a symmetric len(docs)×len(docs) matrix with a unit
	// diagonal, indexed like docs.
	Similarities(ctx context.Context, docs []corpus.Document) (simgraph.Matrix, error)
}

// Cosine returns the cosine similarity of a and b. It returns 0 for
// mismatched lengths and zero vectors.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineMatrix computes the cosine similarity of every pair of vectors.
// The diagonal is 1 and the result is exactly symmetric.
func CosineMatrix(vectors [][]float32) simgraph.Matrix {
	n := len(vectors)
	m := make(simgraph.Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			s := Cosine(vectors[i], vectors[j])
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}
