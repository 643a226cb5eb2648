package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shpandrak/shpansample/sampler"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Symbol string  `json:"s"`
	Price  float64 `json:"p"`
	Seq    int     `json:"seq"`
}

// newQuoteServer serves count quotes per connection, then closes normally unless keepOpen is set
func newQuoteServer(t *testing.T, count int, keepOpen bool) *httptest.Server {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for i := 0; i < count; i++ {
			if err := conn.WriteJSON(quote{Symbol: "SHPN", Price: float64(100 + i), Seq: i}); err != nil {
				return
			}
		}
		if keepOpen {
			// Wait for the client to hang up
			_, _, _ = conn.ReadMessage()
			return
		}
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialer(srv *httptest.Server) func(ctx context.Context) (*websocket.Conn, error) {
	return func(ctx context.Context) (*websocket.Conn, error) {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
		return conn, err
	}
}

func TestStreamJsonFromWebSocket(t *testing.T) {
	srv := newQuoteServer(t, 50, false)
	quotes, err := StreamJsonFromWebSocket[quote](dialer(srv)).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 50)
	require.Equal(t, 0, quotes[0].Seq)
	require.Equal(t, 49, quotes[49].Seq)
}

func TestStreamJsonFromWebSocket_RandomSample(t *testing.T) {
	srv := newQuoteServer(t, 200, false)
	quotes, err := StreamJsonFromWebSocket[quote](dialer(srv)).
		CollectRandomSampleWithRand(context.Background(), 10, sampler.NewSeededRand(2))
	require.NoError(t, err)
	require.Len(t, quotes, 10)

	seen := make(map[int]bool)
	for _, q := range quotes {
		require.False(t, seen[q.Seq])
		seen[q.Seq] = true
		require.Equal(t, float64(100+q.Seq), q.Price)
	}
}

// A live feed never ends, limiting it is how a sample gets taken
func TestStreamJsonFromWebSocket_LimitLiveFeed(t *testing.T) {
	srv := newQuoteServer(t, 100, true)
	quotes, err := StreamJsonFromWebSocket[quote](dialer(srv)).
		Limit(30).
		CollectRandomSample(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, quotes, 5)
	for _, q := range quotes {
		require.Less(t, q.Seq, 30)
	}
}

func TestStreamJsonFromWebSocket_ContextTimeout(t *testing.T) {
	srv := newQuoteServer(t, 1, true)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := StreamJsonFromWebSocket[quote](dialer(srv)).CollectRandomSample(ctx, 5)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStreamJsonFromWebSocket_DialError(t *testing.T) {
	_, err := StreamJsonFromWebSocket[quote](func(ctx context.Context) (*websocket.Conn, error) {
		return websocket.DefaultDialer.DialContext(ctx, "ws://127.0.0.1:1/nothing", nil)
	}).Collect(context.Background())
	require.Error(t, err)
}
