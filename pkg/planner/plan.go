package planner

import (
	"slices"

	"github.com/papercomputeco/shelf/pkg/simgraph"
)

// ReadingPlan is the result of Plan: Path starts at the chosen read node
// (Source) and ends at the wanted node (Want).
type ReadingPlan struct {
	Source   int     `json:"source"`
	Want     int     `json:"want"`
	Path     []int   `json:"path"`
	Distance float64 `json:"distance"`
}

// Route is the shortest route from one read node to the wanted node.
// Path is nil and Reachable false when no route exists.
type Route struct {
	Source    int     `json:"source"`
	Reachable bool    `json:"reachable"`
	Distance  float64 `json:"distance,omitempty"`
	Path      []int   `json:"path,omitempty"`
}

// Plan returns the cheapest path from any node in read to want.
func Plan(g *simgraph.Graph, read []int, want int) (*ReadingPlan, error) {
	read, err := checkNodes(g, read, want)
	if err != nil {
		return nil, err
	}

	tree, err := ShortestPaths(g, want)
	if err != nil {
		return nil, err
	}

	best := -1
	for _, r := range read {
		if !tree.Reachable(r) {
			continue
		}
		// read is sorted, so strict comparison keeps the lowest index on ties.
		if best == -1 || tree.Distance(r) < tree.Distance(best) {
			best = r
		}
	}
	if best == -1 {
		return nil, &NoPathError{Want: want, Read: read}
	}

	path := tree.PathTo(best)
	slices.Reverse(path)

	return &ReadingPlan{
		Source:   best,
		Want:     want,
		Path:     path,
		Distance: tree.Distance(best),
	}, nil
}

// Routes returns the route from every node in read to want, ordered by read
// index. All routes come from a single search rooted at want.
func Routes(g *simgraph.Graph, read []int, want int) ([]Route, error) {
	read, err := checkNodes(g, read, want)
	if err != nil {
		return nil, err
	}

	tree, err := ShortestPaths(g, want)
	if err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(read))
	for _, r := range read {
		route := Route{Source: r, Reachable: tree.Reachable(r)}
		if route.Reachable {
			route.Distance = tree.Distance(r)
			route.Path = tree.PathTo(r)
			slices.Reverse(route.Path)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// checkNodes validates want and read against g and returns read sorted and
// de-duplicated.
func checkNodes(g *simgraph.Graph, read []int, want int) ([]int, error) {
	if !g.HasNode(want) {
		return nil, &UnknownNodeError{Node: want}
	}

	set := slices.Clone(read)
	slices.Sort(set)
	set = slices.Compact(set)

	for _, r := range set {
		if !g.HasNode(r) {
			return nil, &UnknownNodeError{Node: r}
		}
	}
	return set, nil
}
