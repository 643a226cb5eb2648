// Package jsonstream streams the elements of a JSON array one at a time, without decoding the whole array.
package jsonstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/shpandrak/shpansample/internal/util"
	"github.com/shpandrak/shpansample/stream"
)

// ErrNotJsonArray is returned when the input does not start with a JSON array.
var ErrNotJsonArray = errors.New("input is not a JSON array")

type jsonArrayStreamProvider[T any] struct {
	readCloserProvider func(ctx context.Context) (io.ReadCloser, error)
	readCloser         io.ReadCloser
	jsonDecoder        *json.Decoder
}

// StreamJsonArray creates a stream of the elements of the JSON array read from the reader readCloserProvider
// returns on materialization. Each element is decoded into T as it is pulled.
func StreamJsonArray[T any](readCloserProvider func(ctx context.Context) (io.ReadCloser, error)) stream.Stream[T] {
	return stream.NewStream[T](&jsonArrayStreamProvider[T]{readCloserProvider: readCloserProvider})
}

func (j *jsonArrayStreamProvider[T]) Open(ctx context.Context) error {
	rc, err := j.readCloserProvider(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to open JSON array stream")
	}
	j.readCloser = rc
	j.jsonDecoder = json.NewDecoder(rc)

	// First token must be an array start
	t, err := j.jsonDecoder.Token()
	if err != nil {
		return errors.Wrap(err, "failed to open JSON array stream")
	}
	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return errors.Wrapf(ErrNotJsonArray, "unexpected first token %v", t)
	}
	return nil
}

func (j *jsonArrayStreamProvider[T]) Close() {
	if j.readCloser != nil {
		if err := j.readCloser.Close(); err != nil {
			slog.Warn(fmt.Sprintf("error closing JSON array stream: %v", err))
		}
		j.readCloser = nil
	}
	j.jsonDecoder = nil
}

func (j *jsonArrayStreamProvider[T]) Emit(ctx context.Context) (T, error) {
	if ctx.Err() != nil {
		return util.DefaultValue[T](), ctx.Err()
	}

	if !j.jsonDecoder.More() {
		t, err := j.jsonDecoder.Token()
		if err != nil {
			return util.DefaultValue[T](), errors.Wrap(err, "failed reading end of JSON array")
		}
		if delim, ok := t.(json.Delim); !ok || delim != ']' {
			return util.DefaultValue[T](), errors.Newf("expected end of JSON array, got %v", t)
		}
		return util.DefaultValue[T](), io.EOF
	}

	var parsedElement T
	if err := j.jsonDecoder.Decode(&parsedElement); err != nil {
		// The buffered input helps figuring out what went wrong
		bufferMessage := ""
		if buffText, bufErr := io.ReadAll(j.jsonDecoder.Buffered()); bufErr == nil {
			bufferMessage = fmt.Sprintf(". parser buffer %s", buffText)
		}
		return util.DefaultValue[T](), errors.Wrapf(err, "error parsing array element%s", bufferMessage)
	}
	return parsedElement, nil
}
