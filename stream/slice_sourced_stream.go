package stream

import (
	"context"
	"io"
	"slices"

	"github.com/shpandrak/shpansample/internal/util"
)

// Just creates a stream of the given values.
func Just[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromSlice creates a stream of the slice elements.
// The slice is copied, later changes to it do not affect the stream.
func FromSlice[T any](slice []T) Stream[T] {
	return NewStream(&sliceStream[T]{slcOrig: slices.Clone(slice)})
}

type sliceStream[T any] struct {
	slcOrig []T
	slc     []T
}

func (j *sliceStream[T]) Open(_ context.Context) error {
	j.slc = j.slcOrig
	return nil
}

func (j *sliceStream[T]) Close() {
	j.slc = nil
}

func (j *sliceStream[T]) Emit(ctx context.Context) (T, error) {
	if ctx.Err() != nil {
		return util.DefaultValue[T](), ctx.Err()
	}
	if len(j.slc) == 0 {
		return util.DefaultValue[T](), io.EOF
	}
	v := j.slc[0]
	j.slc = j.slc[1:]
	return v, nil
}
