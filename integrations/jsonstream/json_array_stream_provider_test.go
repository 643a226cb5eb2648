package jsonstream

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shpandrak/shpansample/sampler"
	"github.com/stretchr/testify/require"
)

type reading struct {
	Sensor string  `json:"sensor"`
	Value  float64 `json:"value"`
}

func fromString(s string) func(ctx context.Context) (io.ReadCloser, error) {
	return func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestStreamJsonArray(t *testing.T) {
	s := StreamJsonArray[reading](fromString(`[{"sensor":"a","value":1},{"sensor":"b","value":2.5}]`))
	require.Equal(t, []reading{{Sensor: "a", Value: 1}, {Sensor: "b", Value: 2.5}}, s.MustCollect())
}

func TestStreamJsonArray_Empty(t *testing.T) {
	require.Empty(t, StreamJsonArray[reading](fromString(` [ ] `)).MustCollect())
}

func TestStreamJsonArray_NotAnArray(t *testing.T) {
	_, err := StreamJsonArray[reading](fromString(`{"sensor":"a"}`)).Collect(context.Background())
	require.ErrorIs(t, err, ErrNotJsonArray)
}

func TestStreamJsonArray_BadElement(t *testing.T) {
	_, err := StreamJsonArray[reading](fromString(`[{"sensor":"a","value":1},{"sensor":7}]`)).Collect(context.Background())
	require.Error(t, err)
}

func TestStreamJsonArray_Truncated(t *testing.T) {
	_, err := StreamJsonArray[reading](fromString(`[{"sensor":"a","value":1},`)).Collect(context.Background())
	require.Error(t, err)
}

func TestStreamJsonArray_RandomSample(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 1000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf(`{"sensor":"s%d","value":%d}`, i, i))
	}
	sb.WriteString("]")

	rSample, err := StreamJsonArray[reading](fromString(sb.String())).
		CollectRandomSampleWithRand(context.Background(), 10, sampler.NewSeededRand(4))
	require.NoError(t, err)
	require.Len(t, rSample, 10)
	for _, r := range rSample {
		require.Equal(t, fmt.Sprintf("s%d", int(r.Value)), r.Sensor)
	}
}
