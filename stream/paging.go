package stream

import (
	"context"
	"io"

	"github.com/shpandrak/shpansample/internal/util"
)

// Limit truncates the stream to at most limit elements.
// Once the limit is reached the source is not pulled anymore, which makes Limit the way to bound
// an unbounded stream.
func (s Stream[T]) Limit(limit int) Stream[T] {
	if limit <= 0 {
		return Empty[T]()
	}
	alreadyConsumed := 0
	return newStream(func(ctx context.Context) (T, error) {
		if alreadyConsumed >= limit {
			return util.DefaultValue[T](), io.EOF
		}

		v, err := s.provider(ctx)
		if err != nil {
			// this covers for both EOF and any other error
			return util.DefaultValue[T](), err
		}
		alreadyConsumed++
		return v, nil
	}, append(s.lifecyclesCopy(), NewLifecycle(func(context.Context) error {
		alreadyConsumed = 0
		return nil
	}, nil)))
}

// Skip drops the first skip elements of the stream.
func (s Stream[T]) Skip(skip int) Stream[T] {
	alreadySkipped := false
	return newStream(func(ctx context.Context) (T, error) {
		if ctx.Err() != nil {
			return util.DefaultValue[T](), ctx.Err()
		}
		if !alreadySkipped {
			alreadySkipped = true
			for i := 0; i < skip; i++ {
				v, err := s.provider(ctx)
				if err != nil {
					return v, err
				}
			}
		}
		return s.provider(ctx)

	}, append(s.lifecyclesCopy(), NewLifecycle(func(context.Context) error {
		alreadySkipped = false
		return nil
	}, nil)))
}

func (s Stream[T]) lifecyclesCopy() []Lifecycle {
	return append([]Lifecycle(nil), s.allLifecycleElement...)
}
