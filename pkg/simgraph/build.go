package simgraph

import (
	"errors"
	"fmt"

	"github.com/papercomputeco/shelf/pkg/distance"
)

// Options configures Build.
type Options struct {
	// Policy selects which pairs become edges. Defaults to Threshold{DefaultThreshold}.
	Policy Policy

	// Transform converts similarities to weights. Defaults to distance.Angular().
	Transform distance.Transform
}

// DefaultOptions returns the threshold policy with the angular transform.
func DefaultOptions() Options {
	return Options{
		Policy:    NewThreshold(DefaultThreshold),
		Transform: distance.Angular(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Policy == nil {
		o.Policy = d.Policy
	}
	if o.Transform == nil {
		o.Transform = d.Transform
	}
	return o
}

// Build validates m and constructs its similarity graph. All m.Len() items
// become nodes; edges are the union of every node's policy proposals, weighted
// by the transform. m is never modified.
func Build(m Matrix, opts Options) (*Graph, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	b := newBuilder(m.Len())
	for i := range m.Len() {
		for _, j := range opts.Policy.Propose(m, i) {
			if j == i || j < 0 || j >= m.Len() {
				continue
			}
			w := opts.Transform.Distance(m[i][j])
			if err := checkWeight(w); err != nil {
				return nil, fmt.Errorf("%s(%g) for edge (%d, %d): %w", opts.Transform.Name(), m[i][j], i, j, err)
			}
			b.add(i, j, w)
		}
	}

	return b.graph(), nil
}

// IsInvalidMatrix reports whether err was caused by a malformed matrix.
func IsInvalidMatrix(err error) bool {
	var target *InvalidMatrixError
	return errors.As(err, &target)
}
