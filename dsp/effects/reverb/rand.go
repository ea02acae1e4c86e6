package reverb

import (
	"math"
	"math/rand/v2"
)

// Uniform draws floats from the half-open interval [lo, hi).
type Uniform interface {
	Uniform(lo, hi float64) float64
}

// RandSource is a seeded Uniform backed by a PCG generator.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource returns a Uniform that yields the same sequence for the same
// seed.
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform returns a value in [lo, hi). If hi <= lo it returns lo.
func (s *RandSource) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}

	v := lo + s.rng.Float64()*(hi-lo)
	// lo + 0.999..*(hi-lo) can round up to hi.
	if v >= hi {
		return math.Nextafter(hi, lo)
	}
	return v
}
