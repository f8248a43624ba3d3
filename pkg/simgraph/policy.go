package simgraph

import (
	"fmt"
	"slices"
)

const (
	// DefaultThreshold is the default similarity cut-off of the Threshold policy.
	DefaultThreshold = 0.1

	// DefaultTopK is the default neighbour count of the TopK policy.
	DefaultTopK = 3

	// ThresholdPolicyName and TopKPolicyName are the configuration names of the
	// two built-in policies.
	ThresholdPolicyName = "threshold"
	TopKPolicyName      = "topk"
)

// Policy decides which item pairs become edges.
//
// Propose is evaluated independently for every node and returns the
// neighbours node i asks to be connected to. The builder takes the union of all
// proposals; a pair proposed by both endpoints yields one edge.
type Policy interface {
	// Name identifies the policy and its parameters, e.g. "threshold(0.1)".
	Name() string

	// Propose returns the nodes j != i that node i proposes as neighbours.
	Propose(m Matrix, i int) []int
}

// Threshold connects every pair whose similarity is strictly greater than Value.
type Threshold struct {
	Value float64
}

// NewThreshold returns a Threshold policy with the given cut-off.
func NewThreshold(value float64) Threshold {
	return Threshold{Value: value}
}

func (t Threshold) Name() string {
	return fmt.Sprintf("%s(%g)", ThresholdPolicyName, t.Value)
}

func (t Threshold) Propose(m Matrix, i int) []int {
	var out []int
	for j, s := range m[i] {
		if j != i && s > t.Value {
			out = append(out, j)
		}
	}
	return out
}

// TopK connects each node to its K most similar other nodes.
// Equal similarities are ranked by ascending index.
type TopK struct {
	K int
}

// NewTopK returns a TopK policy with the given neighbour count.
func NewTopK(k int) TopK {
	return TopK{K: k}
}

func (t TopK) Name() string {
	return fmt.Sprintf("%s(%d)", TopKPolicyName, t.K)
}

func (t TopK) Propose(m Matrix, i int) []int {
	if t.K <= 0 {
		return nil
	}

	candidates := make([]int, 0, len(m[i]))
	for j := range m[i] {
		if j != i {
			candidates = append(candidates, j)
		}
	}

	row := m[i]
	slices.SortStableFunc(candidates, func(a, b int) int {
		switch {
		case row[a] > row[b]:
			return -1
		case row[a] < row[b]:
			return 1
		default:
			return a - b
		}
	})

	if len(candidates) > t.K {
		candidates = candidates[:t.K]
	}
	return candidates
}

// LookupPolicy builds a policy from its configuration name and parameters.
func LookupPolicy(name string, threshold float64, k int) (Policy, error) {
	switch name {
	case "", ThresholdPolicyName:
		return NewThreshold(threshold), nil
	case TopKPolicyName, "top-k", "top_k":
		if k <= 0 {
			return nil, fmt.Errorf("top-k policy requires k > 0, got %d", k)
		}
		return NewTopK(k), nil
	default:
		return nil, fmt.Errorf("unknown sparsification policy: %q (available: %s, %s)", name, ThresholdPolicyName, TopKPolicyName)
	}
}
