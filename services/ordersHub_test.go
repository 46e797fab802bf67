package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newTestSocket dials a websocket pair; the server side forwards every
// received frame to the returned channel.
func newTestSocket(t *testing.T) (*websocket.Conn, chan []byte, func()) {
	t.Helper()

	received := make(chan []byte, 256)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				return
			}
			received <- msg
		}
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dialing test socket: %v", err)
	}
	return conn, received, func() {
		conn.Close()
		srv.Close()
	}
}

// A snapshot for one client and a broadcast to all clients may hit the
// same connection at the same time; both must serialize on it.
func TestHubSerializesSnapshotAndBroadcast(t *testing.T) {
	conn, received, done := newTestSocket(t)
	defer done()

	hub := NewOrdersHub()
	hub.Register(conn)
	defer hub.Unregister(conn)

	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Broadcast(liveOrdersMessage{Type: "orders"})
		}()
		go func() {
			defer wg.Done()
			if err := hub.Send(conn, liveOrdersMessage{Type: "orders"}); err != nil {
				t.Errorf("Send: %v", err)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 2*rounds; i++ {
		select {
		case msg := <-received:
			if !json.Valid(msg) {
				t.Fatalf("frame %d is not valid JSON: %q", i, msg)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %d of %d frames", i, 2*rounds)
		}
	}
}

func TestHubSendRequiresRegistration(t *testing.T) {
	conn, _, done := newTestSocket(t)
	defer done()

	hub := NewOrdersHub()
	if err := hub.Send(conn, liveOrdersMessage{Type: "orders"}); err == nil {
		t.Error("Send on an unregistered connection succeeded, want error")
	}
}
