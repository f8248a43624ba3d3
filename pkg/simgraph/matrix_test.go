package simgraph_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/shelf/pkg/simgraph"
)

var _ = Describe("Matrix", func() {
	Describe("Validate", func() {
		It("accepts a well formed matrix", func() {
			m := simgraph.Matrix{
				{1, 0.5},
				{0.5, 1},
			}
			Expect(m.Validate()).To(Succeed())
		})

		It("accepts an empty matrix", func() {
			Expect(simgraph.Matrix{}.Validate()).To(Succeed())
		})

		It("rejects a non-square matrix", func() {
			m := simgraph.Matrix{
				{1, 0.5, 0.1},
				{0.5, 1},
			}
			err := m.Validate()
			Expect(err).To(HaveOccurred())

			var invalid *simgraph.InvalidMatrixError
			Expect(err).To(BeAssignableToTypeOf(invalid))
			Expect(err.Error()).To(ContainSubstring("columns"))
		})

		It("rejects a non-symmetric matrix", func() {
			m := simgraph.Matrix{
				{1, 0.5},
				{0.4, 1},
			}
			err := m.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not symmetric"))
		})

		It("rejects values outside [-1, 1]", func() {
			m := simgraph.Matrix{
				{1, 1.5},
				{1.5, 1},
			}
			Expect(simgraph.IsInvalidMatrix(m.Validate())).To(BeTrue())
		})

		It("tolerates float noise at the bounds", func() {
			m := simgraph.Matrix{
				{1.0000000001, 0.2},
				{0.2, 1.0000000001},
			}
			Expect(m.Validate()).To(Succeed())
		})

		It("rejects NaN", func() {
			m := simgraph.Matrix{
				{1, math.NaN()},
				{math.NaN(), 1},
			}
			err := m.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not finite"))
		})
	})
})
