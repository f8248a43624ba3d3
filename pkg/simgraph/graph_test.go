package simgraph_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/shelf/pkg/simgraph"
)

var _ = Describe("FromEdges", func() {
	It("builds a graph from an edge list", func() {
		g, err := simgraph.FromEdges(4, []simgraph.Edge{
			{From: 2, To: 0, Weight: 0.5},
			{From: 0, To: 1, Weight: 0.25},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Len()).To(Equal(4))
		Expect(g.Edges()).To(Equal([]simgraph.Edge{
			{From: 0, To: 1, Weight: 0.25},
			{From: 0, To: 2, Weight: 0.5},
		}))
		Expect(g.Neighbors(0)).To(Equal([]simgraph.Neighbor{
			{Node: 1, Weight: 0.25},
			{Node: 2, Weight: 0.5},
		}))
		Expect(g.Isolated()).To(Equal([]int{3}))
	})

	It("keeps the first weight of a duplicate edge", func() {
		g, err := simgraph.FromEdges(2, []simgraph.Edge{
			{From: 0, To: 1, Weight: 0.25},
			{From: 1, To: 0, Weight: 0.75},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.EdgeCount()).To(Equal(1))
		w, _ := g.Weight(1, 0)
		Expect(w).To(Equal(0.25))
	})

	It("rejects self loops", func() {
		_, err := simgraph.FromEdges(2, []simgraph.Edge{{From: 1, To: 1, Weight: 0}})
		Expect(err).To(MatchError(simgraph.ErrSelfLoop))
	})

	It("rejects nodes out of range", func() {
		_, err := simgraph.FromEdges(2, []simgraph.Edge{{From: 0, To: 2, Weight: 0}})
		var outOfRange *simgraph.NodeOutOfRangeError
		Expect(err).To(BeAssignableToTypeOf(outOfRange))
	})

	It("rejects negative weights", func() {
		_, err := simgraph.FromEdges(2, []simgraph.Edge{{From: 0, To: 1, Weight: -1}})
		Expect(err).To(MatchError(simgraph.ErrNegativeWeight))
	})
})

var _ = Describe("Graph", func() {
	It("answers queries for unknown nodes without panicking", func() {
		g, err := simgraph.FromEdges(1, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.HasNode(-1)).To(BeFalse())
		Expect(g.HasNode(1)).To(BeFalse())
		Expect(g.Neighbors(5)).To(BeNil())
		Expect(g.HasEdge(0, 5)).To(BeFalse())
	})

	It("reports connected components in node order", func() {
		g, err := simgraph.FromEdges(6, []simgraph.Edge{
			{From: 4, To: 5, Weight: 1},
			{From: 0, To: 3, Weight: 1},
			{From: 3, To: 1, Weight: 1},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Components()).To(Equal([][]int{{0, 1, 3}, {2}, {4, 5}}))
	})
})
