package simgraph

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeWeight is returned when a distance transform yields a negative
	// weight. Shortest-path search over such a graph would be incorrect.
	ErrNegativeWeight = errors.New("negative edge weight")

	// ErrNonFiniteWeight is returned when a distance transform yields NaN or ±Inf.
	ErrNonFiniteWeight = errors.New("non-finite edge weight")

	// ErrSelfLoop is returned when an edge list contains an edge from a node to itself.
	ErrSelfLoop = errors.New("self loop")
)

// InvalidMatrixError reports a malformed similarity matrix.
// Col is -1 when the problem concerns a whole row.
type InvalidMatrixError struct {
	Row    int
	Col    int
	Reason string
}

func (e *InvalidMatrixError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("invalid similarity matrix: row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("invalid similarity matrix: [%d][%d]: %s", e.Row, e.Col, e.Reason)
}

// NodeOutOfRangeError is returned by FromEdges for edges that reference a
// node outside [0, n).
type NodeOutOfRangeError struct {
	Node int
	Len  int
}

func (e *NodeOutOfRangeError) Error() string {
	return fmt.Sprintf("node %d out of range [0, %d)", e.Node, e.Len)
}
