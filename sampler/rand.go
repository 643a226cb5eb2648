package sampler

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mathext/prng"
)

// Rand is the source of randomness a reservoir draws from.
// *rand.Rand from math/rand/v2 satisfies it.
//
// Implementations must be uniform: IntN must not favor any value in [0, n) and
// Shuffle must produce every ordering with equal probability. A biased source
// breaks the sampling guarantee, not just its quality.
type Rand interface {
	// IntN returns a uniformly distributed int in [0, n). n is always > 0.
	IntN(n int) int

	// Shuffle permutes n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a generator seeded from the wall clock.
// The result is not safe for concurrent use, each sampling run should own one.
func NewRand() *rand.Rand {
	return NewSeededRand(uint64(time.Now().UnixNano()))
}

// NewSeededRand returns a deterministic generator, two generators created with
// the same seed produce the same samples for the same input.
func NewSeededRand(seed uint64) *rand.Rand {
	// Sampling doesn't need a cryptographically secure source, only a uniform one.
	source := prng.NewMT19937()
	source.Seed(seed)
	return rand.New(source)
}
