package anneal_test

import (
	"context"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/zplace/anneal"
	"github.com/sarchlab/zplace/errs"
)

// intAnnealer minimizes x^2 over integers in [-50, 50] by random +-1..5
// steps, used to exercise the generic engine without any placement
// domain types.
type intAnnealer struct {
	x, prevX int
}

func (a *intAnnealer) Move(rng anneal.Rand) (float64, bool) {
	step := rng.Intn(11) - 5
	candidate := a.x + step
	if candidate < -50 || candidate > 50 {
		return 0, false
	}
	before := float64(a.x * a.x)
	after := float64(candidate * candidate)
	a.prevX = a.x
	a.x = candidate
	return after - before, true
}

func (a *intAnnealer) Undo() { a.x = a.prevX }

func (a *intAnnealer) Energy() float64 { return float64(a.x * a.x) }

func (a *intAnnealer) Snapshot() anneal.Snapshot { return a.x }

func (a *intAnnealer) Restore(s anneal.Snapshot) { a.x = s.(int) }

var _ = Describe("Run", func() {
	It("drives energy toward the minimum", func() {
		a := &intAnnealer{x: 40}
		sched := anneal.NewSchedule(50, 0.1, 2000)
		rng := rand.New(rand.NewSource(1))

		result, err := anneal.Run(context.Background(), a, sched, rng, time.Time{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.BestEnergy).To(BeNumerically("<", result.InitialEnergy))
		Expect(a.Energy()).To(Equal(result.BestEnergy))
	})

	It("returns a TimedOut error and the best-seen state on deadline expiry", func() {
		a := &intAnnealer{x: 40}
		sched := anneal.NewSchedule(50, 0.1, 10_000_000)
		rng := rand.New(rand.NewSource(1))

		result, err := anneal.Run(context.Background(), a, sched, rng, time.Now().Add(10*time.Millisecond))
		Expect(err).To(HaveOccurred())
		Expect(errs.Is(err, errs.TimedOut)).To(BeTrue())
		Expect(a.Energy()).To(Equal(result.BestEnergy))
	})

	It("returns a Cancelled error when the context is already done", func() {
		a := &intAnnealer{x: 10}
		sched := anneal.NewSchedule(50, 0.1, 100)
		rng := rand.New(rand.NewSource(1))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := anneal.Run(ctx, a, sched, rng, time.Time{})
		Expect(err).To(HaveOccurred())
		Expect(errs.Is(err, errs.Cancelled)).To(BeTrue())
	})
})

var _ = Describe("Schedule.Aggressive", func() {
	It("collapses Tmax to Tmin+3 and cuts steps by 10x", func() {
		s := anneal.NewSchedule(100, 1, 1000)
		agg := s.Aggressive()
		Expect(agg.Tmax).To(Equal(4.0))
		Expect(agg.Steps).To(Equal(100))
	})
})
