package stream

import (
	"context"

	"github.com/shpandrak/shpansample/internal/util"
)

// Map maps the source stream to a target stream using the provided mapper function.
func Map[SRC any, TGT any](src Stream[SRC], mapper func(SRC) TGT) Stream[TGT] {
	return MapWithErr(src, func(v SRC) (TGT, error) {
		return mapper(v), nil
	})
}

// MapWithErr maps the source stream to a target stream, a mapper error fails the stream.
func MapWithErr[SRC any, TGT any](src Stream[SRC], mapper func(SRC) (TGT, error)) Stream[TGT] {
	return newStream(
		func(ctx context.Context) (TGT, error) {
			v, err := src.provider(ctx)
			if err != nil {
				return util.DefaultValue[TGT](), err
			}
			return mapper(v)
		}, src.allLifecycleElement,
	)
}
