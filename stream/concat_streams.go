package stream

import (
	"context"
	"io"

	"github.com/shpandrak/shpansample/internal/util"
)

// ConcatStreams joins streams sequentially one after the other.
// Each stream is opened only once the previous one is exhausted, and closed right after.
func ConcatStreams[T any](streams ...Stream[T]) Stream[T] {
	if len(streams) == 0 {
		return Empty[T]()
	}
	return NewStream(&concatProvider[T]{streams: streams})
}

type concatProvider[T any] struct {
	streams    []Stream[T]
	ctx        context.Context
	currIdx    int
	currCancel context.CancelFunc
}

func (cp *concatProvider[T]) Open(ctx context.Context) error {
	cp.ctx = ctx
	cp.currIdx = -1
	return cp.openNext()
}

// openNext closes the current sub stream if any, and opens the following one.
func (cp *concatProvider[T]) openNext() error {
	cp.closeCurr()
	cp.currIdx++
	if cp.currIdx >= len(cp.streams) {
		return nil
	}
	cancelFunc, err := doOpenStream(cp.ctx, cp.streams[cp.currIdx])
	if err != nil {
		// Nothing left open, make sure Close doesn't touch the failed stream
		cp.currIdx = len(cp.streams)
		return err
	}
	cp.currCancel = cancelFunc
	return nil
}

func (cp *concatProvider[T]) closeCurr() {
	if cp.currCancel != nil {
		doCloseSubStream(cp.streams[cp.currIdx])
		cp.currCancel()
		cp.currCancel = nil
	}
}

func (cp *concatProvider[T]) Close() {
	cp.closeCurr()
}

func (cp *concatProvider[T]) Emit(ctx context.Context) (T, error) {
	for {
		if ctx.Err() != nil {
			return util.DefaultValue[T](), ctx.Err()
		}
		if cp.currIdx >= len(cp.streams) {
			return util.DefaultValue[T](), io.EOF
		}
		v, err := cp.streams[cp.currIdx].provider(ctx)
		if err == nil {
			return v, nil
		}
		if err != io.EOF {
			return util.DefaultValue[T](), err
		}
		if err := cp.openNext(); err != nil {
			return util.DefaultValue[T](), err
		}
	}
}
