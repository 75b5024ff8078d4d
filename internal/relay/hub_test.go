// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRelay(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(discardLogger())
	srv := httptest.NewServer(NewRouter(Deps{Hub: hub, Logger: discardLogger()}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d registered clients, have %d", n, hub.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	hub, url := newTestRelay(t)

	sender := dialWS(t, url)
	recv1 := dialWS(t, url)
	recv2 := dialWS(t, url)
	waitForClients(t, hub, 3)

	payload := []byte(`{"type":"stroke_end","strokeId":"s1","id":"x","seq":0,"userId":"u1"}`)
	if err := sender.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("send: %v", err)
	}

	for i, recv := range []*websocket.Conn{recv1, recv2} {
		_ = recv.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, got, err := recv.ReadMessage()
		if err != nil {
			t.Fatalf("receiver %d: %v", i, err)
		}
		if string(got) != string(payload) {
			t.Fatalf("receiver %d: payload altered: %s", i, got)
		}
	}

	// The sender must never get its own frame back.
	_ = sender.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := sender.ReadMessage(); err == nil {
		t.Fatal("sender received its own broadcast")
	}
}

func TestRelayForwardsOpaquePayloads(t *testing.T) {
	hub, url := newTestRelay(t)

	sender := dialWS(t, url)
	recv := dialWS(t, url)
	waitForClients(t, hub, 2)

	// The relay does no validation: garbage passes through verbatim.
	payload := []byte(`this is not even json`)
	if err := sender.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("send: %v", err)
	}

	_ = recv.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := recv.ReadMessage()
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload altered in transit: %s", got)
	}
}

func TestDisconnectedClientIsSkipped(t *testing.T) {
	hub, url := newTestRelay(t)

	sender := dialWS(t, url)
	recv := dialWS(t, url)
	leaver := dialWS(t, url)
	waitForClients(t, hub, 3)

	_ = leaver.Close()
	waitForClients(t, hub, 2)

	// Fan-out keeps working for the remaining connection.
	if err := sender.WriteMessage(websocket.TextMessage, []byte(`{"type":"cursor","userId":"u1"}`)); err != nil {
		t.Fatalf("send after disconnect: %v", err)
	}

	_ = recv.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := recv.ReadMessage(); err != nil {
		t.Fatalf("surviving receiver: %v", err)
	}
}

func TestHubLen(t *testing.T) {
	hub, url := newTestRelay(t)
	if hub.Len() != 0 {
		t.Fatalf("expected empty hub, got %d", hub.Len())
	}

	dialWS(t, url)
	waitForClients(t, hub, 1)
}
