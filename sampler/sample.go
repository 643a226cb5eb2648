// Package sampler draws fixed size uniform random samples from sequences of unknown length
// in a single pass, keeping only the sample in memory.
package sampler

import "iter"

// Sample consumes seq once, in order, and returns min(size, n) of its n items, chosen uniformly
// at random and returned in random order.
// seq may be unbounded, in which case Sample returns only when seq stops yielding.
// rnd may be nil, in which case a fresh generator is used for this call.
// A negative size fails with ErrInvalidSize before seq is pulled.
func Sample[T any](seq iter.Seq[T], size int, rnd Rand) ([]T, error) {
	r, err := NewReservoir[T](size, rnd)
	if err != nil {
		return nil, err
	}
	for v := range seq {
		r.Offer(v)
	}
	return r.Sample(), nil
}

// MustSample is a convenience function that panics on an invalid size.
// Should be used for testing purpose or when the size is a constant
func MustSample[T any](seq iter.Seq[T], size int, rnd Rand) []T {
	ret, err := Sample(seq, size, rnd)
	if err != nil {
		panic(err)
	}
	return ret
}
