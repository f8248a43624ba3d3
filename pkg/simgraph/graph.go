package simgraph

import (
	"math"
	"slices"
)

// Neighbor is one end of an edge as seen from the other end.
type Neighbor struct {
	Node   int
	Weight float64
}

// Edge is an undirected weighted edge. From is always the smaller index.
type Edge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

// Graph is an immutable undirected weighted graph over nodes 0..Len()-1.
// Every node exists even when it has no edges. A Graph is safe for concurrent
// reads.
type Graph struct {
	adj   [][]Neighbor
	edges int
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}

// HasNode reports whether i is a node of g.
func (g *Graph) HasNode(i int) bool {
	return i >= 0 && i < len(g.adj)
}

// Neighbors returns the neighbours of i ordered by node index.
// The returned slice must not be modified.
func (g *Graph) Neighbors(i int) []Neighbor {
	if !g.HasNode(i) {
		return nil
	}
	return g.adj[i]
}

// Degree returns the number of edges incident to i.
func (g *Graph) Degree(i int) int {
	return len(g.Neighbors(i))
}

// Weight returns the weight of edge (i, j) and whether it exists.
func (g *Graph) Weight(i, j int) (float64, bool) {
	nbrs := g.Neighbors(i)
	k, found := slices.BinarySearchFunc(nbrs, j, func(n Neighbor, target int) int {
		return n.Node - target
	})
	if !found {
		return 0, false
	}
	return nbrs[k].Weight, true
}

// HasEdge reports whether i and j are adjacent.
func (g *Graph) HasEdge(i, j int) bool {
	_, ok := g.Weight(i, j)
	return ok
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Edges returns every edge once, ordered by (From, To).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for i, nbrs := range g.adj {
		for _, n := range nbrs {
			if n.Node > i {
				out = append(out, Edge{From: i, To: n.Node, Weight: n.Weight})
			}
		}
	}
	return out
}

// Isolated returns the nodes without edges, in ascending order.
func (g *Graph) Isolated() []int {
	var out []int
	for i, nbrs := range g.adj {
		if len(nbrs) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Components returns the connected components. Each component is sorted and
// components are ordered by their smallest node.
func (g *Graph) Components() [][]int {
	seen := make([]bool, len(g.adj))
	var out [][]int
	for start := range g.adj {
		if seen[start] {
			continue
		}
		seen[start] = true
		component := []int{start}
		for queue := []int{start}; len(queue) > 0; queue = queue[1:] {
			for _, n := range g.adj[queue[0]] {
				if !seen[n.Node] {
					seen[n.Node] = true
					component = append(component, n.Node)
					queue = append(queue, n.Node)
				}
			}
		}
		slices.Sort(component)
		out = append(out, component)
	}
	return out
}

// FromEdges builds a graph with n nodes from an explicit edge list.
// Duplicate edges keep the first weight seen.
func FromEdges(n int, edges []Edge) (*Graph, error) {
	b := newBuilder(n)
	for _, e := range edges {
		for _, node := range []int{e.From, e.To} {
			if node < 0 || node >= n {
				return nil, &NodeOutOfRangeError{Node: node, Len: n}
			}
		}
		if e.From == e.To {
			return nil, ErrSelfLoop
		}
		if err := checkWeight(e.Weight); err != nil {
			return nil, err
		}
		b.add(e.From, e.To, e.Weight)
	}
	return b.graph(), nil
}

func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return ErrNonFiniteWeight
	}
	if w < 0 {
		return ErrNegativeWeight
	}
	return nil
}

type pair struct{ a, b int }

// builder accumulates edges; the first weight recorded for a pair wins.
type builder struct {
	adj  [][]Neighbor
	seen map[pair]struct{}
}

func newBuilder(n int) *builder {
	return &builder{
		adj:  make([][]Neighbor, n),
		seen: make(map[pair]struct{}),
	}
}

func (b *builder) add(i, j int, w float64) bool {
	key := pair{min(i, j), max(i, j)}
	if _, ok := b.seen[key]; ok {
		return false
	}
	b.seen[key] = struct{}{}
	b.adj[i] = append(b.adj[i], Neighbor{Node: j, Weight: w})
	b.adj[j] = append(b.adj[j], Neighbor{Node: i, Weight: w})
	return true
}

func (b *builder) graph() *Graph {
	for _, nbrs := range b.adj {
		slices.SortFunc(nbrs, func(x, y Neighbor) int { return x.Node - y.Node })
	}
	return &Graph{adj: b.adj, edges: len(b.seen)}
}
