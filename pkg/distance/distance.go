// Package distance maps similarity scores onto non-negative edge weights.
//
// A Transform is the strategy the graph builder uses to turn a similarity value
// in [-1, 1] into a traversal cost. Transforms must be monotonically
// non-increasing in similarity and never return a negative value: the planner's
// shortest-path search depends on it.
package distance

import (
	"fmt"
	"math"
	"strings"
)

const (
	// AngularName is the configuration name of the Angular transform.
	AngularName = "angular"

	// CosineName is the configuration name of the Cosine transform.
	CosineName = "cosine"
)

// Transform converts a similarity score into an edge weight.
type Transform interface {
	// Name identifies the transform in configuration and cache keys.
	Name() string

	// Distance returns the weight for the given similarity.
	Distance(similarity float64) float64
}

type funcTransform struct {
	name string
	fn   func(float64) float64
}

func (t funcTransform) Name() string { return t.name }

func (t funcTransform) Distance(similarity float64) float64 { return t.fn(similarity) }

// New wraps fn as a named Transform.
func New(name string, fn func(float64) float64) Transform {
	return funcTransform{name: name, fn: fn}
}

// Angular returns the angular distance transform: acos(s) * 2 / π.
// It is 0 at similarity 1, 1 at similarity 0 and 2 at similarity -1.
func Angular() Transform {
	return funcTransform{name: AngularName, fn: angular}
}

// Cosine returns the cosine distance transform: 1 - s, in [0, 2].
func Cosine() Transform {
	return funcTransform{name: CosineName, fn: cosine}
}

func angular(similarity float64) float64 {
	return math.Acos(Clamp(similarity)) * 2 / math.Pi
}

func cosine(similarity float64) float64 {
	return 1 - Clamp(similarity)
}

// Clamp limits s to [-1, 1]. NaN is returned unchanged.
func Clamp(s float64) float64 {
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	default:
		return s
	}
}

// Names returns the names accepted by Lookup.
func Names() []string {
	return []string{AngularName, CosineName}
}

// Lookup resolves a configured transform name.
func Lookup(name string) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AngularName:
		return Angular(), nil
	case CosineName:
		return Cosine(), nil
	default:
		return nil, fmt.Errorf("unknown distance transform: %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}
