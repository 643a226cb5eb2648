package stream

import (
	"context"
	"io"

	"github.com/shpandrak/shpansample/internal/util"
)

// newStreamFromCollector creates a stream whose elements are computed by collector when the stream is opened,
// resulting in a delayed materialization of src.
func newStreamFromCollector[S any, T any](
	src Stream[S],
	collector func(ctx context.Context, src Stream[S]) ([]T, error),
) Stream[T] {
	return NewStream[T](&collectedStream[S, T]{src: src, collector: collector})
}

type collectedStream[S any, T any] struct {
	src       Stream[S]
	collector func(ctx context.Context, src Stream[S]) ([]T, error)
	collected []T
}

func (m *collectedStream[S, T]) Open(ctx context.Context) error {
	collected, err := m.collector(ctx, m.src)
	if err != nil {
		return err
	}
	m.collected = collected
	return nil
}

func (m *collectedStream[S, T]) Close() {
	m.collected = nil
}

func (m *collectedStream[S, T]) Emit(ctx context.Context) (T, error) {
	if ctx.Err() != nil {
		return util.DefaultValue[T](), ctx.Err()
	}
	if len(m.collected) == 0 {
		return util.DefaultValue[T](), io.EOF
	}
	v := m.collected[0]
	m.collected = m.collected[1:]
	return v, nil
}
