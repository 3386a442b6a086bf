package pattern

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding of noise fills.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Between returns a uniform value in [low, high).
func (r *RNG) Between(low, high float64) float64 {
	if high <= low {
		return low
	}
	return low + r.r.Float64()*(high-low)
}
