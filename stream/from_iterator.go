package stream

import (
	"context"
	"io"
	"iter"

	"github.com/shpandrak/shpansample/internal/util"
)

// FromIterator creates a stream pulling from seq.
// seq is started on every materialization and stopped when the stream closes.
func FromIterator[E any](seq iter.Seq[E]) Stream[E] {
	var next func() (E, bool)
	var stop func()
	return NewSimpleStream(
		func(ctx context.Context) (E, error) {
			if ctx.Err() != nil {
				return util.DefaultValue[E](), ctx.Err()
			}
			e, ok := next()
			if !ok {
				return util.DefaultValue[E](), io.EOF
			}
			return e, nil
		},
		WithOpenFuncOption(func(_ context.Context) error {
			next, stop = iter.Pull(seq)
			return nil
		}),
		WithCloseFuncOption(func() {
			if stop != nil {
				stop()
				stop = nil
			}
		}),
	)
}

// Generate creates an unbounded stream, each item is the result of calling f with its zero based index.
// An error returned by f fails the stream, io.EOF ends it.
func Generate[T any](f func(ctx context.Context, index int) (T, error)) Stream[T] {
	index := 0
	return NewSimpleStream(
		func(ctx context.Context) (T, error) {
			v, err := f(ctx, index)
			if err != nil {
				return util.DefaultValue[T](), err
			}
			index++
			return v, nil
		},
		WithOpenFuncOption(func(_ context.Context) error {
			index = 0
			return nil
		}),
	)
}
