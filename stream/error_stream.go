package stream

import (
	"context"

	"github.com/shpandrak/shpansample/internal/util"
)

// Error creates a stream that fails with err when materialized.
func Error[T any](err error) Stream[T] {
	return newStream(func(context.Context) (T, error) {
		return util.DefaultValue[T](), err
	}, []Lifecycle{NewLifecycle(func(_ context.Context) error {
		return err
	}, nil)})
}
