package stream

import (
	"context"
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestConcatenatedStream(t *testing.T) {
	require.EqualValues(
		t,
		[]int{1, 2, 3, 4, 5, 6, 7, 8},
		ConcatStreams(
			Just(1, 2, 3),
			Just(4, 5),
			Empty[int](),
			Just(6),
			Just(7, 8),
		).MustCollect(),
	)
}

func TestEmptyConcatenatedStream(t *testing.T) {
	require.Len(t, ConcatStreams(Empty[int](), Empty[int](), Empty[int]()).MustCollect(), 0)
	require.Len(t, ConcatStreams[int]().MustCollect(), 0)
}

func TestErrorConcatenatedStream(t *testing.T) {
	ctx := context.Background()
	testErr := errors.New("hi")

	_, err := ConcatStreams(Empty[int](), Error[int](testErr), Empty[int]()).Collect(ctx)
	require.ErrorIs(t, err, testErr)

	_, err = ConcatStreams(Error[int](testErr)).Collect(ctx)
	require.ErrorIs(t, err, testErr)

	_, err = ConcatStreams(Just(1), Error[int](testErr)).Collect(ctx)
	require.ErrorIs(t, err, testErr)

	_, err = ConcatStreams(Error[int](testErr), Just(1)).Collect(ctx)
	require.ErrorIs(t, err, testErr)
}

func TestConcatenatedStream_OpensLazilyAndClosesEachStream(t *testing.T) {
	var events []string
	watched := func(name string, count int) Stream[int] {
		emitted := 0
		return NewSimpleStream(
			func(context.Context) (int, error) {
				if emitted == count {
					return 0, io.EOF
				}
				emitted++
				events = append(events, name)
				return emitted, nil
			},
			WithOpenFuncOption(func(context.Context) error {
				emitted = 0
				events = append(events, "open "+name)
				return nil
			}),
			WithCloseFuncOption(func() {
				events = append(events, "close "+name)
			}),
		)
	}

	require.Equal(t, []int{1, 2, 1}, ConcatStreams(watched("a", 2), watched("b", 1)).MustCollect())
	require.Equal(t, []string{"open a", "a", "a", "close a", "open b", "b", "close b"}, events)
}
