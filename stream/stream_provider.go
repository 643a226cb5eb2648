package stream

import "context"

// Provider is what a data source implements to be exposed as a stream.
// Open is called once per materialization, before the first Emit, and Close once after the last.
type Provider[T any] interface {
	Lifecycle

	// Emit returns the next item in the stream, or an error.
	// When the stream is done, it should return io.EOF, which is never propagated to the consumer.
	// Emit is never called concurrently.
	// The stream checks for context cancellation between calls to Emit, a provider that blocks
	// should respect ctx as well.
	Emit(ctx context.Context) (T, error)
}

// Lifecycle hooks into opening and closing a stream.
type Lifecycle interface {
	Open(ctx context.Context) error
	Close()
}

type lifecycleWrapper struct {
	openFunc  func(ctx context.Context) error
	closeFunc func()
}

// NewLifecycle creates a Lifecycle from optional open and close functions, either may be nil.
func NewLifecycle(openFunc func(ctx context.Context) error, closeFunc func()) Lifecycle {
	return &lifecycleWrapper{openFunc: openFunc, closeFunc: closeFunc}
}

func (s *lifecycleWrapper) Open(ctx context.Context) error {
	if s.openFunc != nil {
		return s.openFunc(ctx)
	}
	return nil
}

func (s *lifecycleWrapper) Close() {
	if s.closeFunc != nil {
		s.closeFunc()
	}
}
