package stream

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/shpandrak/shpansample/internal/util"
)

// Stream is a lazy, single pass, pull based sequence of items.
// Nothing is read from the underlying source until a terminal operation (Consume, Collect, Count, ...)
// materializes the stream. Every materialization opens the source again.
type Stream[T any] struct {
	provider            ProviderFunc[T]
	allLifecycleElement []Lifecycle
}

// ProviderFunc returns the next item of a stream, or io.EOF when there are no more items.
type ProviderFunc[T any] func(ctx context.Context) (T, error)

func NewStream[T any](provider Provider[T]) Stream[T] {
	return newStream(provider.Emit, []Lifecycle{provider})
}

func newStream[T any](streamProviderFunc ProviderFunc[T], allLifecycleElement []Lifecycle) Stream[T] {
	return Stream[T]{provider: streamProviderFunc, allLifecycleElement: allLifecycleElement}
}

type CreateStreamOption struct {
	openFunc  func(ctx context.Context) error
	closeFunc func()
}

func WithOpenFuncOption(openFunc func(ctx context.Context) error) CreateStreamOption {
	return CreateStreamOption{openFunc: openFunc}
}

func WithCloseFuncOption(closeFunc func()) CreateStreamOption {
	return CreateStreamOption{closeFunc: closeFunc}
}

// NewSimpleStream creates a stream from a provider function, with optional open and close hooks.
func NewSimpleStream[T any](streamProviderFunc ProviderFunc[T], options ...CreateStreamOption) Stream[T] {
	var openFunc func(ctx context.Context) error
	var closeFunc func()

	for _, option := range options {
		if option.openFunc != nil {
			openFunc = option.openFunc
		}
		if option.closeFunc != nil {
			closeFunc = option.closeFunc
		}
	}

	var lifeCycleElements []Lifecycle
	if openFunc != nil || closeFunc != nil {
		lifeCycleElements = []Lifecycle{NewLifecycle(openFunc, closeFunc)}
	}
	return newStream(streamProviderFunc, lifeCycleElements)
}

// Consume materializes the stream and applies f to each element, in order.
// For empty streams, it returns immediately with no error.
// For unbounded streams, it blocks until ctx is cancelled or the source fails.
func (s Stream[T]) Consume(ctx context.Context, f func(T)) error {
	return s.ConsumeWithErr(ctx, func(v T) error {
		f(v)
		return nil
	})
}

// MustConsume is a convenience method that panics if the stream errors
func (s Stream[T]) MustConsume(f func(T)) {
	if err := s.Consume(context.Background(), f); err != nil {
		panic(err)
	}
}

// ConsumeWithErr is like Consume, but f may return an error to stop the stream.
// Errors from the source and from f are returned as is.
func (s Stream[T]) ConsumeWithErr(ctx context.Context, f func(T) error) error {
	cancelFunc, err := doOpenStream(ctx, s)
	if err != nil {
		return err
	}

	// All lifecycle elements are open from here on, close them when done
	defer func() {
		doCloseSubStream(s)
		cancelFunc()
	}()

	for {
		// Check the context between pulls, providers are not required to
		if ctx.Err() != nil {
			return ctx.Err()
		}
		v, err := s.provider(ctx)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := f(v); err != nil {
			return err
		}
	}
}

// Collect materializes the stream, and collects all elements of the stream into a slice.
// Should not be used on unbounded streams
func (s Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var result []T
	err := s.Consume(ctx, func(v T) {
		result = append(result, v)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MustCollect is a convenience method that panics if the stream errors
// should be used for testing purpose or when streams are static (e.g. slice sourced streams)
func (s Stream[T]) MustCollect() []T {
	result, err := s.Collect(context.Background())
	if err != nil {
		panic(err)
	}
	return result
}

// Count counts the number of elements in the stream (materializes the stream)
func (s Stream[T]) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.Consume(ctx, func(T) {
		count++
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MustCount is a convenience method that panics if the stream errors.
func (s Stream[T]) MustCount() int {
	count, err := s.Count(context.Background())
	if err != nil {
		panic(err)
	}
	return count
}

func (s Stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return s.FilterWithErr(func(v T) (bool, error) {
		return predicate(v), nil
	})
}

func (s Stream[T]) FilterWithErr(predicate func(T) (bool, error)) Stream[T] {
	return newStream(func(ctx context.Context) (T, error) {
		for {
			v, err := s.provider(ctx)
			if err != nil {
				return v, err
			}
			shouldKeep, err := predicate(v)
			if err != nil {
				// Wrapping errors, e.g. we don't want EOF accidentally returned from here
				return util.DefaultValue[T](), errors.Wrap(err, "filter failed for stream")
			}
			if shouldKeep {
				return v, nil
			}
		}
	}, s.allLifecycleElement)
}

// Peek calls f on every element as it passes through, without consuming the stream.
func (s Stream[T]) Peek(f func(v T)) Stream[T] {
	return Map(s, func(v T) T {
		f(v)
		return v
	})
}

func doOpenStream[T any](ctx context.Context, s Stream[T]) (context.CancelFunc, error) {
	ctxWithCancel, cancelFunc := context.WithCancel(ctx)
	for lcIdx, l := range s.allLifecycleElement {
		if err := l.Open(ctxWithCancel); err != nil {
			// Close only the successfully opened lifecycle elements
			for i := 0; i < lcIdx; i++ {
				s.allLifecycleElement[i].Close()
			}
			cancelFunc()
			return nil, errors.Wrapf(err, "failed to open stream lifecycle element %d", lcIdx)
		}
	}
	return cancelFunc, nil
}

func doCloseSubStream[T any](s Stream[T]) {
	for _, l := range s.allLifecycleElement {
		l.Close()
	}
}
