package stream

import (
	"context"

	"github.com/cockroachdb/errors"
)

var errStopIteration = errors.New("iteration stopped by consumer")

// Iterator allows ranging over the stream, e.g. `for v := range s.Iterator`.
// Breaking out of the loop closes the stream. Stream errors panic, use Consume to handle them.
func (s Stream[T]) Iterator(yield func(T) bool) {
	err := s.ConsumeWithErr(context.Background(), func(v T) error {
		if !yield(v) {
			return errStopIteration
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		panic(err)
	}
}
