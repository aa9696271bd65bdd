package transport

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_SnapshotAndBroadcast(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var count atomic.Int64
	hub := NewHub(HubOptions{
		Snapshot: func() []Message {
			return []Message{{Type: MessageCarousel, Data: carousel.State{Total: 3}}}
		},
		OnClientCount: func(n int) { count.Store(int64(n)) },
	}, nil)
	srv := httptest.NewServer(hub)

	conn := dial(t, srv)
	first := readMessage(t, conn)
	require.Equal(t, MessageCarousel, first.Type)

	require.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Type: MessageGallery, Data: map[string]int{"total_pages": 2}})
	second := readMessage(t, conn)
	require.Equal(t, MessageGallery, second.Type)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 && count.Load() == 0 }, time.Second, 5*time.Millisecond)

	hub.Close()
	srv.Close()
}

func TestHub_BroadcastDuringConnectIsDelivered(t *testing.T) {
	var hub *Hub
	var once sync.Once
	hub = NewHub(HubOptions{
		Snapshot: func() []Message {
			// Races the registration of the connecting client.
			once.Do(func() {
				go hub.Broadcast(Message{Type: MessageCarousel, Data: carousel.State{CurrentIndex: 1, Total: 3}})
			})
			return []Message{{Type: MessageCarousel, Data: carousel.State{Total: 3}}}
		},
	}, nil)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	conn := dial(t, srv)
	t.Cleanup(func() { conn.Close() })

	require.Equal(t, MessageCarousel, readMessage(t, conn).Type)
	next := readMessage(t, conn)
	require.Equal(t, MessageCarousel, next.Type)
	require.Contains(t, string(mustJSON(t, next.Data)), `"current_index":1`)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(HubOptions{}, nil)
	srv := httptest.NewServer(hub)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	conn.Close()

	require.Equal(t, 0, hub.Clients())
	srv.Close()
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	hub := NewHub(HubOptions{AllowedOrigins: []string{"https://johndeveloper.com"}}, nil)
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := map[string][]string{"Origin": {"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.Equal(t, 403, resp.StatusCode)
}
