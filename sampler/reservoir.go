package sampler

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrInvalidSize is returned when a negative sample size is requested.
var ErrInvalidSize = errors.New("invalid sample size")

// Reservoir keeps a uniform random sample of fixed size over the items offered to it,
// without knowing in advance how many items there will be (Algorithm R).
//
// After i items were offered the reservoir holds min(i, size) of them, and each of the
// i items is held with the same probability.
// A Reservoir is not safe for concurrent use.
type Reservoir[T any] struct {
	rnd   Rand
	size  int
	seen  int
	items []T
}

// NewReservoir creates an empty reservoir that keeps at most size items.
// If rnd is nil, the reservoir gets its own generator from NewRand.
func NewReservoir[T any](size int, rnd Rand) (*Reservoir[T], error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "sample size must not be negative, got %d", size)
	}
	if rnd == nil {
		rnd = NewRand()
	}
	return &Reservoir[T]{
		rnd:   rnd,
		size:  size,
		items: make([]T, 0, size),
	}, nil
}

// Offer feeds the next item of the stream to the reservoir.
func (r *Reservoir[T]) Offer(v T) {
	i := r.seen
	r.seen++

	// Fill the first slots unconditionally
	if i < r.size {
		r.items = append(r.items, v)
		return
	}

	// Nothing will ever be admitted, no point in drawing
	if r.size == 0 {
		return
	}

	// Item i survives with probability size/(i+1), evicting a uniformly chosen slot
	if j := r.rnd.IntN(i + 1); j < r.size {
		r.items[j] = v
	}
}

// Seen returns the number of items offered so far.
func (r *Reservoir[T]) Seen() int {
	return r.seen
}

// Len returns the number of items currently held, min(Seen(), Size()).
func (r *Reservoir[T]) Len() int {
	return len(r.items)
}

// Size returns the requested sample size.
func (r *Reservoir[T]) Size() int {
	return r.size
}

// Sample shuffles the held items and returns a copy of them.
// The shuffle is applied on every call, so the order of the result never follows arrival order,
// even when fewer items than Size() were offered.
// Offering may continue after Sample is called.
func (r *Reservoir[T]) Sample() []T {
	r.rnd.Shuffle(len(r.items), func(i, j int) {
		r.items[i], r.items[j] = r.items[j], r.items[i]
	})
	ret := slices.Clone(r.items[:min(len(r.items), r.size)])
	if ret == nil {
		ret = []T{}
	}
	return ret
}
