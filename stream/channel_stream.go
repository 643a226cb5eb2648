package stream

import (
	"context"
	"io"
	"log/slog"

	"github.com/shpandrak/shpansample/internal/util"
)

type channelStreamProvider[T any] struct {
	originalChannel <-chan T
}

// FromChannel creates a stream of the values received from ch, ending when ch is closed.
// Suits producers that push, e.g. a goroutine reading from a network connection.
// The channel can only be drained once, so the stream should only be materialized once.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return NewStream[T](&channelStreamProvider[T]{originalChannel: ch})
}

func (cp *channelStreamProvider[T]) Open(_ context.Context) error {
	return nil
}

func (cp *channelStreamProvider[T]) Close() {
}

func (cp *channelStreamProvider[T]) Emit(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		return util.DefaultValue[T](), ctx.Err()
	case msg, stillGood := <-cp.originalChannel:
		if !stillGood {
			slog.Debug("Stream channel closed externally")
			return util.DefaultValue[T](), io.EOF
		}
		return msg, nil
	}
}
