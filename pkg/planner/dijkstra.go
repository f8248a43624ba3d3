// Package planner computes reading plans over a similarity graph.
//
// A plan is the cheapest path from any already-read node to a wanted node.
// It is found with one single-source shortest-path search rooted at the wanted
// node followed by a minimum over the read nodes, so every route considered
// comes from the same shortest-path tree.
//
// Tie-breaking is deterministic. The search settles nodes in (distance, index)
// order and only replaces a predecessor on a strictly shorter distance, so
// among equal-weight paths the one through the earliest-settled predecessor is
// kept. Among read nodes at equal distance the lowest index is chosen.
//
// Edge weights must be non-negative; simgraph enforces this at build time.
package planner

import (
	"container/heap"
	"math"

	"github.com/papercomputeco/shelf/pkg/simgraph"
)

// Tree is the result of a single-source shortest-path search.
type Tree struct {
	root int
	dist []float64
	prev []int
}

// ShortestPaths runs Dijkstra's algorithm from root over g.
func ShortestPaths(g *simgraph.Graph, root int) (*Tree, error) {
	if !g.HasNode(root) {
		return nil, &UnknownNodeError{Node: root}
	}

	n := g.Len()
	t := &Tree{
		root: root,
		dist: make([]float64, n),
		prev: make([]int, n),
	}
	for i := range n {
		t.dist[i] = math.Inf(1)
		t.prev[i] = -1
	}
	t.dist[root] = 0

	settled := make([]bool, n)
	pq := &queue{{node: root, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(item)
		if settled[cur.node] {
			continue
		}
		settled[cur.node] = true

		for _, nb := range g.Neighbors(cur.node) {
			if settled[nb.Node] {
				continue
			}
			d := cur.dist + nb.Weight
			if d < t.dist[nb.Node] {
				t.dist[nb.Node] = d
				t.prev[nb.Node] = cur.node
				heap.Push(pq, item{node: nb.Node, dist: d})
			}
		}
	}

	return t, nil
}

// Root returns the node the search started from.
func (t *Tree) Root() int {
	return t.root
}

// Reachable reports whether i can be reached from the root.
func (t *Tree) Reachable(i int) bool {
	return i >= 0 && i < len(t.dist) && !math.IsInf(t.dist[i], 1)
}

// Distance returns the shortest distance from the root to i, or +Inf when i
// is unreachable.
func (t *Tree) Distance(i int) float64 {
	if i < 0 || i >= len(t.dist) {
		return math.Inf(1)
	}
	return t.dist[i]
}

// PathTo returns the nodes from the root to i inclusive, or nil when i is
// unreachable.
func (t *Tree) PathTo(i int) []int {
	if !t.Reachable(i) {
		return nil
	}

	var path []int
	for cur := i; cur != -1; cur = t.prev[cur] {
		path = append(path, cur)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

type item struct {
	node int
	dist float64
}

// queue is a min-heap ordered by distance, then node index.
type queue []item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
