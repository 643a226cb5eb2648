// Package ws streams JSON messages received over a websocket.
package ws

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/shpandrak/shpansample/internal/util"
	"github.com/shpandrak/shpansample/stream"
)

type wsJsonStreamProvider[T any] struct {
	wsFactory func(ctx context.Context) (*websocket.Conn, error)
	ws        *websocket.Conn
	closeOnce *sync.Once
	done      chan struct{}
}

// StreamJsonFromWebSocket creates a stream of the JSON messages read from a websocket, one item per message.
// The connection is created by wsFactory when the stream is materialized, and closed when the stream
// closes or its context is done. A normal close frame from the peer ends the stream.
func StreamJsonFromWebSocket[T any](wsFactory func(ctx context.Context) (*websocket.Conn, error)) stream.Stream[T] {
	return stream.NewStream[T](&wsJsonStreamProvider[T]{wsFactory: wsFactory})
}

func (w *wsJsonStreamProvider[T]) Open(ctx context.Context) error {
	ws, err := w.wsFactory(ctx)
	if err != nil {
		return errors.Wrap(err, "failed opening websocket stream")
	}
	w.ws = ws
	w.closeOnce = &sync.Once{}
	w.done = make(chan struct{})

	// Reads block, closing the connection is the only way to unblock them on cancellation
	go func(ws *websocket.Conn, closeOnce *sync.Once, done chan struct{}) {
		select {
		case <-ctx.Done():
			closeConn(ws, closeOnce)
		case <-done:
		}
	}(ws, w.closeOnce, w.done)

	return nil
}

func closeConn(ws *websocket.Conn, closeOnce *sync.Once) {
	closeOnce.Do(func() {
		if err := ws.Close(); err != nil {
			slog.Warn(fmt.Sprintf("error closing websocket: %v", err))
		}
	})
}

func (w *wsJsonStreamProvider[T]) Close() {
	if w.ws != nil {
		close(w.done)
		closeConn(w.ws, w.closeOnce)
		w.ws = nil
	}
}

func (w *wsJsonStreamProvider[T]) Emit(ctx context.Context) (T, error) {
	var ret T
	if ctx.Err() != nil {
		return ret, ctx.Err()
	}
	if err := w.ws.ReadJSON(&ret); err != nil {
		if ctx.Err() != nil {
			return util.DefaultValue[T](), ctx.Err()
		}
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return util.DefaultValue[T](), io.EOF
		}
		return util.DefaultValue[T](), errors.Wrap(err, "error reading from websocket")
	}
	return ret, nil
}
