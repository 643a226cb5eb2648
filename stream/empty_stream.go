package stream

import (
	"context"
	"io"

	"github.com/shpandrak/shpansample/internal/util"
)

func Empty[T any]() Stream[T] {
	return newStream(func(context.Context) (T, error) {
		return util.DefaultValue[T](), io.EOF
	}, nil)
}
