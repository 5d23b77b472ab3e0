package core

import "math/rand/v2"

// RNG wraps math/rand/v2 with deterministic PCG seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a value in [0, n); it returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Pick returns a uniformly chosen index i in [0, n) with keep(i) true, or -1
// when no index qualifies. It walks the candidates once (reservoir sampling).
func (r *RNG) Pick(n int, keep func(i int) bool) int {
	chosen := -1
	seen := 0
	for i := 0; i < n; i++ {
		if !keep(i) {
			continue
		}
		seen++
		if r.r.IntN(seen) == 0 {
			chosen = i
		}
	}
	return chosen
}
