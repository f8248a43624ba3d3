package planner_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/shelf/pkg/planner"
	"github.com/papercomputeco/shelf/pkg/simgraph"
)

func mustGraph(n int, edges ...simgraph.Edge) *simgraph.Graph {
	g, err := simgraph.FromEdges(n, edges)
	Expect(err).NotTo(HaveOccurred())
	return g
}

// allPairs computes shortest distances with Floyd-Warshall.
func allPairs(g *simgraph.Graph) [][]float64 {
	n := g.Len()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j] = math.Inf(1)
		}
		d[i][i] = 0
		for _, nb := range g.Neighbors(i) {
			d[i][nb.Node] = nb.Weight
		}
	}
	for k := range n {
		for i := range n {
			for j := range n {
				if d[i][k]+d[k][j] < d[i][j] {
					d[i][j] = d[i][k] + d[k][j]
				}
			}
		}
	}
	return d
}

var _ = Describe("Plan", func() {
	Context("with the reference three item corpus", func() {
		var g *simgraph.Graph

		BeforeEach(func() {
			var err error
			g, err = simgraph.Build(simgraph.Matrix{
				{1, 0.9, 0.05},
				{0.9, 1, 0.2},
				{0.05, 0.2, 1},
			}, simgraph.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
		})

		It("bridges through the intermediate item", func() {
			plan, err := planner.Plan(g, []int{0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Path).To(Equal([]int{0, 1, 2}))
			Expect(plan.Source).To(Equal(0))
			Expect(plan.Want).To(Equal(2))
			Expect(plan.Distance).To(BeNumerically("~", 1.159, 1e-3))
		})
	})

	Context("with several read items", func() {
		var g *simgraph.Graph

		BeforeEach(func() {
			g = mustGraph(4,
				simgraph.Edge{From: 0, To: 1, Weight: 0.29},
				simgraph.Edge{From: 1, To: 2, Weight: 0.87},
				simgraph.Edge{From: 2, To: 3, Weight: 0.4},
			)
		})

		It("chooses the nearest read item", func() {
			plan, err := planner.Plan(g, []int{0, 3}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Source).To(Equal(3))
			Expect(plan.Path).To(Equal([]int{3, 2}))
			Expect(plan.Distance).To(BeNumerically("~", 0.4, 1e-12))
		})

		It("ignores duplicate and unreachable read items", func() {
			g = mustGraph(5,
				simgraph.Edge{From: 0, To: 1, Weight: 0.5},
				simgraph.Edge{From: 1, To: 2, Weight: 0.5},
			)
			plan, err := planner.Plan(g, []int{4, 0, 0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Path).To(Equal([]int{0, 1, 2}))
		})

		It("returns the target alone when it was already read", func() {
			plan, err := planner.Plan(g, []int{0, 2}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Path).To(Equal([]int{2}))
			Expect(plan.Distance).To(BeNumerically("==", 0))
		})
	})

	Context("tie-breaking", func() {
		It("picks the lowest read index at equal distance", func() {
			g := mustGraph(3,
				simgraph.Edge{From: 0, To: 1, Weight: 0.5},
				simgraph.Edge{From: 1, To: 2, Weight: 0.5},
			)
			plan, err := planner.Plan(g, []int{2, 0}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Source).To(Equal(0))
			Expect(plan.Path).To(Equal([]int{0, 1}))
		})

		It("keeps the path through the earliest settled node among equal-weight paths", func() {
			// 0 reaches 3 through 1 or 2 at equal cost.
			g := mustGraph(4,
				simgraph.Edge{From: 0, To: 1, Weight: 1},
				simgraph.Edge{From: 0, To: 2, Weight: 1},
				simgraph.Edge{From: 1, To: 3, Weight: 1},
				simgraph.Edge{From: 2, To: 3, Weight: 1},
			)
			plan, err := planner.Plan(g, []int{0}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Path).To(Equal([]int{0, 1, 3}))
		})

		It("is deterministic across runs", func() {
			g := mustGraph(4,
				simgraph.Edge{From: 0, To: 1, Weight: 1},
				simgraph.Edge{From: 0, To: 2, Weight: 1},
				simgraph.Edge{From: 1, To: 3, Weight: 1},
				simgraph.Edge{From: 2, To: 3, Weight: 1},
			)
			first, err := planner.Plan(g, []int{0}, 3)
			Expect(err).NotTo(HaveOccurred())
			for range 20 {
				again, err := planner.Plan(g, []int{0}, 3)
				Expect(err).NotTo(HaveOccurred())
				Expect(again).To(Equal(first))
			}
		})
	})

	Context("failures", func() {
		var g *simgraph.Graph

		BeforeEach(func() {
			g = mustGraph(4,
				simgraph.Edge{From: 0, To: 1, Weight: 0.3},
			)
		})

		It("returns NoPathError when the target is isolated", func() {
			_, err := planner.Plan(g, []int{0, 1}, 3)
			var noPath *planner.NoPathError
			Expect(err).To(BeAssignableToTypeOf(noPath))
			Expect(err.Error()).To(ContainSubstring("no path to node 3"))
		})

		It("returns NoPathError for an empty read set", func() {
			_, err := planner.Plan(g, nil, 1)
			var noPath *planner.NoPathError
			Expect(err).To(BeAssignableToTypeOf(noPath))
		})

		It("returns NoPathError when read items are in another component", func() {
			g = mustGraph(4,
				simgraph.Edge{From: 0, To: 1, Weight: 0.3},
				simgraph.Edge{From: 2, To: 3, Weight: 0.3},
			)
			_, err := planner.Plan(g, []int{0, 1}, 3)
			var noPath *planner.NoPathError
			Expect(err).To(BeAssignableToTypeOf(noPath))
		})

		It("returns UnknownNodeError for a target beyond the graph", func() {
			_, err := planner.Plan(g, []int{0}, 4)
			Expect(err).To(Equal(&planner.UnknownNodeError{Node: 4}))
		})

		It("returns UnknownNodeError for a negative target", func() {
			_, err := planner.Plan(g, []int{0}, -1)
			Expect(err).To(Equal(&planner.UnknownNodeError{Node: -1}))
		})

		It("returns UnknownNodeError for an unknown read item", func() {
			_, err := planner.Plan(g, []int{0, 9}, 1)
			Expect(err).To(Equal(&planner.UnknownNodeError{Node: 9}))
		})
	})

	It("returns valid minimal paths on random graphs", func() {
		r := rand.New(rand.NewSource(99))
		for trial := range 25 {
			n := 12
			var edges []simgraph.Edge
			for i := range n {
				for j := i + 1; j < n; j++ {
					if r.Float64() < 0.25 {
						edges = append(edges, simgraph.Edge{From: i, To: j, Weight: r.Float64() * 2})
					}
				}
			}
			g := mustGraph(n, edges...)
			d := allPairs(g)

			want := r.Intn(n)
			read := []int{r.Intn(n), r.Intn(n), r.Intn(n)}

			plan, err := planner.Plan(g, read, want)

			reachable := false
			bestDist := math.Inf(1)
			for _, rd := range read {
				if !math.IsInf(d[want][rd], 1) {
					reachable = true
					bestDist = math.Min(bestDist, d[want][rd])
				}
			}
			if !reachable {
				var noPath *planner.NoPathError
				Expect(err).To(BeAssignableToTypeOf(noPath), "trial %d", trial)
				continue
			}

			Expect(err).NotTo(HaveOccurred(), "trial %d", trial)
			Expect(read).To(ContainElement(plan.Path[0]))
			Expect(plan.Path[len(plan.Path)-1]).To(Equal(want))

			total := 0.0
			for k := 1; k < len(plan.Path); k++ {
				w, ok := g.Weight(plan.Path[k-1], plan.Path[k])
				Expect(ok).To(BeTrue(), "trial %d: missing edge (%d, %d)", trial, plan.Path[k-1], plan.Path[k])
				total += w
			}
			Expect(total).To(BeNumerically("~", plan.Distance, 1e-9))
			Expect(plan.Distance).To(BeNumerically("~", bestDist, 1e-9))
		}
	})
})

var _ = Describe("Routes", func() {
	It("reports every read item, reachable or not", func() {
		g := mustGraph(5,
			simgraph.Edge{From: 0, To: 1, Weight: 0.29},
			simgraph.Edge{From: 1, To: 2, Weight: 0.87},
			simgraph.Edge{From: 2, To: 3, Weight: 0.4},
		)
		routes, err := planner.Routes(g, []int{4, 3, 0}, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(routes).To(HaveLen(3))

		Expect(routes[0].Source).To(Equal(0))
		Expect(routes[0].Path).To(Equal([]int{0, 1, 2}))
		Expect(routes[0].Distance).To(BeNumerically("~", 1.16, 1e-9))

		Expect(routes[1].Source).To(Equal(3))
		Expect(routes[1].Path).To(Equal([]int{3, 2}))

		Expect(routes[2].Source).To(Equal(4))
		Expect(routes[2].Reachable).To(BeFalse())
		Expect(routes[2].Path).To(BeNil())
	})

	It("rejects unknown nodes", func() {
		g := mustGraph(2)
		_, err := planner.Routes(g, []int{0}, 7)
		Expect(err).To(Equal(&planner.UnknownNodeError{Node: 7}))
	})
})

var _ = Describe("ShortestPaths", func() {
	It("computes distances and paths from the root", func() {
		g := mustGraph(4,
			simgraph.Edge{From: 0, To: 1, Weight: 1},
			simgraph.Edge{From: 1, To: 2, Weight: 1},
			simgraph.Edge{From: 0, To: 2, Weight: 3},
		)
		tree, err := planner.ShortestPaths(g, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.Root()).To(Equal(0))
		Expect(tree.Distance(2)).To(BeNumerically("==", 2))
		Expect(tree.PathTo(2)).To(Equal([]int{0, 1, 2}))
		Expect(tree.PathTo(0)).To(Equal([]int{0}))
		Expect(tree.Reachable(3)).To(BeFalse())
		Expect(tree.PathTo(3)).To(BeNil())
		Expect(math.IsInf(tree.Distance(3), 1)).To(BeTrue())
		Expect(math.IsInf(tree.Distance(99), 1)).To(BeTrue())
	})

	It("handles zero weight edges", func() {
		g := mustGraph(3,
			simgraph.Edge{From: 0, To: 1, Weight: 0},
			simgraph.Edge{From: 1, To: 2, Weight: 0},
		)
		tree, err := planner.ShortestPaths(g, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.PathTo(0)).To(Equal([]int{2, 1, 0}))
		Expect(tree.Distance(0)).To(BeNumerically("==", 0))
	})

	It("rejects an unknown root", func() {
		g := mustGraph(1)
		_, err := planner.ShortestPaths(g, 1)
		Expect(err).To(Equal(&planner.UnknownNodeError{Node: 1}))
	})
})
