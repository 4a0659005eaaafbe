package alias_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/zplace/alias"
)

var _ = Describe("Table", func() {
	It("matches empirical frequency within tolerance over many draws", func() {
		p := []float64{1, 2, 3, 4}
		table := alias.Setup(p)
		r := rand.New(rand.NewSource(42))

		const n = 1_000_000
		counts := make([]int, len(p))
		for i := 0; i < n; i++ {
			counts[alias.Draw(table, r)]++
		}

		total := 0.0
		for _, v := range p {
			total += v
		}
		for i, want := range p {
			expected := want / total * float64(n)
			got := float64(counts[i])
			// 2-sigma tolerance on a binomial count.
			prob := want / total
			sigma := math.Sqrt(float64(n) * prob * (1 - prob))
			Expect(got).To(BeNumerically("~", expected, 2*sigma))
		}
	})

	It("handles a degenerate single-outcome distribution", func() {
		table := alias.Setup([]float64{5})
		r := rand.New(rand.NewSource(1))
		for i := 0; i < 100; i++ {
			Expect(alias.Draw(table, r)).To(Equal(0))
		}
	})

	It("handles uniform weights", func() {
		table := alias.Setup([]float64{1, 1, 1})
		r := rand.New(rand.NewSource(7))
		counts := make([]int, 3)
		for i := 0; i < 300_000; i++ {
			counts[alias.Draw(table, r)]++
		}
		for _, c := range counts {
			Expect(float64(c)).To(BeNumerically("~", 100_000, 3000))
		}
	})
})
