// Package alias implements Vose's alias method: O(1) discrete sampling
// from an arbitrary (not necessarily normalized) probability vector,
// after an O(K) setup pass. Used by the random walk engine to pick the
// next hop in constant time regardless of neighbor-list length.
package alias

// Table holds the two arrays Vose's method needs to draw in O(1).
type Table struct {
	J []int
	Q []float64
}

// Setup builds a Table over p. p need not be normalized; it is
// normalized internally. An empty p yields an empty Table, and Draw on
// an empty Table panics, matching "must not occur" per the caller's own
// precondition that degree-0 nodes are never sampled from. An all-zero p
// yields a uniform Table over its K entries.
func Setup(p []float64) Table {
	k := len(p)
	q := make([]float64, k)
	j := make([]int, k)

	if k == 0 {
		return Table{J: j, Q: q}
	}

	sum := 0.0
	for _, v := range p {
		sum += v
	}

	scaled := make([]float64, k)
	if sum > 0 {
		for i, v := range p {
			scaled[i] = v / sum * float64(k)
		}
	}

	small := make([]int, 0, k)
	large := make([]int, 0, k)
	for i, v := range scaled {
		if v < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		q[s] = scaled[s]
		j[s] = l

		scaled[l] = scaled[l] + scaled[s] - 1.0
		if scaled[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	for len(large) > 0 {
		l := large[len(large)-1]
		large = large[:len(large)-1]
		q[l] = 1.0
	}
	for len(small) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		q[s] = 1.0
	}

	return Table{J: j, Q: q}
}

// Rand is the minimal RNG surface Draw needs: a uniform sample in
// [0,1). Satisfied by *rand.Rand's Float64 method.
type Rand interface {
	Float64() float64
}

// Draw returns an index in [0, len(t.Q)) sampled according to the
// distribution Table was built from: pick k = floor(rand()*K), then keep
// k if a second uniform draw is below q[k], else take the alias j[k].
func Draw(t Table, r Rand) int {
	k := len(t.Q)
	if k == 0 {
		panic("alias: Draw called on an empty table")
	}
	idx := int(r.Float64() * float64(k))
	if idx >= k {
		idx = k - 1
	}
	if r.Float64() < t.Q[idx] {
		return idx
	}
	return t.J[idx]
}
