// Package simgraph turns a pairwise similarity matrix into an undirected,
// weighted graph over item indices.
//
// The sparsification policy (which pairs become edges) and the distance
// transform (how a similarity becomes a weight) are both strategies supplied by
// the caller, so either can change without touching graph construction or the
// search that runs over the result.
package simgraph

import (
	"fmt"
	"math"
)

const (
	// symmetryTolerance is the largest accepted |m[i][j] - m[j][i]|.
	symmetryTolerance = 1e-9

	// rangeTolerance allows float noise just outside [-1, 1]; such values are
	// clamped by the distance transform.
	rangeTolerance = 1e-6
)

// Matrix is a dense N×N similarity matrix. Row i holds the similarity of item i
// to every other item; the diagonal is self-similarity.
type Matrix [][]float64

// Len returns the number of items (rows) in the matrix.
func (m Matrix) Len() int {
	return len(m)
}

// At returns m[i][j].
func (m Matrix) At(i, j int) float64 {
	return m[i][j]
}

// Validate checks that m is square, symmetric, finite and within [-1, 1].
func (m Matrix) Validate() error {
	n := len(m)
	for i, row := range m {
		if len(row) != n {
			return &InvalidMatrixError{Row: i, Col: -1, Reason: fmt.Sprintf("row has %d columns, want %d", len(row), n)}
		}
	}

	for i := range n {
		for j := range n {
			v := m[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InvalidMatrixError{Row: i, Col: j, Reason: "value is not finite"}
			}
			if v > 1+rangeTolerance || v < -1-rangeTolerance {
				return &InvalidMatrixError{Row: i, Col: j, Reason: fmt.Sprintf("value %g outside [-1, 1]", v)}
			}
			if j > i && math.Abs(v-m[j][i]) > symmetryTolerance {
				return &InvalidMatrixError{Row: i, Col: j, Reason: fmt.Sprintf("not symmetric: %g != %g", v, m[j][i])}
			}
		}
	}

	return nil
}
