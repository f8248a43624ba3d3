package simgraph_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/shelf/pkg/distance"
	"github.com/papercomputeco/shelf/pkg/simgraph"
)

// randomMatrix returns a symmetric matrix with a unit diagonal and
// off-diagonal values in [0, 1).
func randomMatrix(n int, seed int64) simgraph.Matrix {
	r := rand.New(rand.NewSource(seed))
	m := make(simgraph.Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			v := r.Float64()
			m[i][j] = v
			m[j][i] = v
		}
	}
	return m
}

func copyMatrix(m simgraph.Matrix) simgraph.Matrix {
	out := make(simgraph.Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

var threeBooks = simgraph.Matrix{
	{1, 0.9, 0.05},
	{0.9, 1, 0.2},
	{0.05, 0.2, 1},
}

var _ = Describe("Build", func() {
	Describe("with the threshold policy", func() {
		It("builds the reference three item graph", func() {
			g, err := simgraph.Build(threeBooks, simgraph.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Len()).To(Equal(3))
			Expect(g.EdgeCount()).To(Equal(2))

			w, ok := g.Weight(0, 1)
			Expect(ok).To(BeTrue())
			Expect(w).To(BeNumerically("~", 0.2871, 1e-4))

			w, ok = g.Weight(2, 1)
			Expect(ok).To(BeTrue())
			Expect(w).To(BeNumerically("~", 0.8718, 1e-4))

			Expect(g.HasEdge(0, 2)).To(BeFalse())
		})

		It("adds an edge iff similarity is strictly above the threshold", func() {
			m := randomMatrix(25, 7)
			m[3][4], m[4][3] = 0.3, 0.3
			policy := simgraph.NewThreshold(0.3)

			g, err := simgraph.Build(m, simgraph.Options{Policy: policy})
			Expect(err).NotTo(HaveOccurred())

			for i := range m.Len() {
				Expect(g.HasEdge(i, i)).To(BeFalse())
				for j := range m.Len() {
					if i == j {
						continue
					}
					Expect(g.HasEdge(i, j)).To(Equal(m[i][j] > 0.3), "pair (%d, %d) similarity %g", i, j, m[i][j])
				}
			}
			Expect(g.HasEdge(3, 4)).To(BeFalse())
		})

		It("keeps zero weight edges between identical documents", func() {
			m := simgraph.Matrix{
				{1, 1},
				{1, 1},
			}
			g, err := simgraph.Build(m, simgraph.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			w, ok := g.Weight(0, 1)
			Expect(ok).To(BeTrue())
			Expect(w).To(BeNumerically("==", 0))
		})

		It("keeps isolated items as nodes", func() {
			m := simgraph.Matrix{
				{1, 0.8, 0},
				{0.8, 1, 0},
				{0, 0, 1},
			}
			g, err := simgraph.Build(m, simgraph.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Len()).To(Equal(3))
			Expect(g.HasNode(2)).To(BeTrue())
			Expect(g.Degree(2)).To(Equal(0))
			Expect(g.Isolated()).To(Equal([]int{2}))
			Expect(g.Components()).To(Equal([][]int{{0, 1}, {2}}))
		})
	})

	Describe("with the top-k policy", func() {
		It("proposes at most k neighbours per node and never itself", func() {
			m := randomMatrix(30, 42)
			policy := simgraph.NewTopK(3)

			for i := range m.Len() {
				proposed := policy.Propose(m, i)
				Expect(len(proposed)).To(BeNumerically("<=", 3))
				Expect(proposed).NotTo(ContainElement(i))
			}
		})

		It("selects the most similar neighbours", func() {
			m := simgraph.Matrix{
				{1, 0.1, 0.7, 0.3, 0.9},
				{0.1, 1, 0.2, 0.2, 0.2},
				{0.7, 0.2, 1, 0.4, 0.5},
				{0.3, 0.2, 0.4, 1, 0.6},
				{0.9, 0.2, 0.5, 0.6, 1},
			}
			Expect(simgraph.NewTopK(2).Propose(m, 0)).To(Equal([]int{4, 2}))
		})

		It("breaks similarity ties by lower index", func() {
			m := simgraph.Matrix{
				{1, 0.2, 0.2, 0.2},
				{0.2, 1, 0.2, 0.2},
				{0.2, 0.2, 1, 0.2},
				{0.2, 0.2, 0.2, 1},
			}
			Expect(simgraph.NewTopK(2).Propose(m, 3)).To(Equal([]int{0, 1}))
		})

		It("builds the union of every node's proposals", func() {
			m := randomMatrix(20, 3)
			policy := simgraph.NewTopK(2)

			g, err := simgraph.Build(m, simgraph.Options{Policy: policy})
			Expect(err).NotTo(HaveOccurred())

			expected := map[[2]int]bool{}
			for i := range m.Len() {
				for _, j := range policy.Propose(m, i) {
					expected[[2]int{min(i, j), max(i, j)}] = true
					Expect(g.HasEdge(i, j)).To(BeTrue())
				}
			}
			Expect(g.EdgeCount()).To(Equal(len(expected)))

			for i := range m.Len() {
				for _, n := range g.Neighbors(i) {
					Expect(expected[[2]int{min(i, n.Node), max(i, n.Node)}]).To(BeTrue())
				}
			}
		})

		It("adds an edge proposed by only one endpoint", func() {
			m := simgraph.Matrix{
				{1, 0.9, 0.8, 0.1},
				{0.9, 1, 0.7, 0.2},
				{0.8, 0.7, 1, 0.3},
				{0.1, 0.2, 0.3, 1},
			}
			// node 3's best neighbour is 2, but 2 prefers 0.
			g, err := simgraph.Build(m, simgraph.Options{Policy: simgraph.NewTopK(1)})
			Expect(err).NotTo(HaveOccurred())
			Expect(g.HasEdge(3, 2)).To(BeTrue())
			Expect(simgraph.NewTopK(1).Propose(m, 2)).To(Equal([]int{0}))
		})

		It("stores one edge with a single weight when both endpoints propose the pair", func() {
			m := simgraph.Matrix{
				{1, 0.9},
				{0.9, 1},
			}
			calls := 0
			counting := distance.New("counting", func(s float64) float64 {
				calls++
				return distance.Angular().Distance(s)
			})

			g, err := simgraph.Build(m, simgraph.Options{Policy: simgraph.NewTopK(1), Transform: counting})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(2))
			Expect(g.EdgeCount()).To(Equal(1))

			w01, _ := g.Weight(0, 1)
			w10, _ := g.Weight(1, 0)
			Expect(w01).To(Equal(w10))
			Expect(w01).To(Equal(distance.Angular().Distance(0.9)))
		})

		It("keeps the first written weight for a repeated pair", func() {
			m := simgraph.Matrix{
				{1, 0.5},
				{0.5, 1},
			}
			next := 0.0
			drifting := distance.New("drifting", func(float64) float64 {
				next++
				return next
			})

			g, err := simgraph.Build(m, simgraph.Options{Policy: simgraph.NewTopK(1), Transform: drifting})
			Expect(err).NotTo(HaveOccurred())
			w, _ := g.Weight(0, 1)
			Expect(w).To(BeNumerically("==", 1))
		})
	})

	It("does not modify the input matrix", func() {
		m := randomMatrix(10, 11)
		before := copyMatrix(m)

		_, err := simgraph.Build(m, simgraph.Options{Policy: simgraph.NewTopK(3)})
		Expect(err).NotTo(HaveOccurred())
		_, err = simgraph.Build(m, simgraph.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		Expect(m).To(Equal(before))
	})

	It("includes every node of a graph without edges", func() {
		m := simgraph.Matrix{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		}
		g, err := simgraph.Build(m, simgraph.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(3))
		Expect(g.EdgeCount()).To(Equal(0))
		for i := range 3 {
			Expect(g.HasNode(i)).To(BeTrue())
		}
	})

	It("fails fast on a malformed matrix", func() {
		m := simgraph.Matrix{
			{1, 0.5},
			{0.2, 1},
		}
		_, err := simgraph.Build(m, simgraph.DefaultOptions())
		Expect(simgraph.IsInvalidMatrix(err)).To(BeTrue())
	})

	It("rejects transforms that produce negative weights", func() {
		negative := distance.New("negative", func(s float64) float64 { return -s })
		_, err := simgraph.Build(threeBooks, simgraph.Options{Transform: negative})
		Expect(err).To(MatchError(simgraph.ErrNegativeWeight))
	})
})

var _ = Describe("LookupPolicy", func() {
	It("builds the threshold policy by default", func() {
		p, err := simgraph.LookupPolicy("", 0.25, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(simgraph.NewThreshold(0.25)))
		Expect(p.Name()).To(Equal("threshold(0.25)"))
	})

	It("builds the top-k policy", func() {
		p, err := simgraph.LookupPolicy("topk", 0, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name()).To(Equal("topk(5)"))
	})

	It("rejects a non-positive k", func() {
		_, err := simgraph.LookupPolicy("topk", 0, 0)
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown policies", func() {
		_, err := simgraph.LookupPolicy("knn", 0, 0)
		Expect(err).To(HaveOccurred())
	})
})
