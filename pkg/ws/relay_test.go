package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, relay *Relay, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for relay.ClientsCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d relay clients, have %d", n, relay.ClientsCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRelayExcludesSender(t *testing.T) {
	relay := NewRelay()
	server := httptest.NewServer(http.HandlerFunc(relay.Handler))
	defer server.Close()

	sender := dial(t, server)
	receiver := dial(t, server)
	waitForClients(t, relay, 2)

	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(`{"type":"sync"}`)))

	require.NoError(t, receiver.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := receiver.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"sync"}`, string(message))

	// The sender must not see its own frame back.
	require.NoError(t, sender.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = sender.ReadMessage()
	assert.Error(t, err, "sender should time out without an echo")
}

func TestRelayDropsDisconnectedClients(t *testing.T) {
	relay := NewRelay()
	server := httptest.NewServer(http.HandlerFunc(relay.Handler))
	defer server.Close()

	conn := dial(t, server)
	waitForClients(t, relay, 1)

	conn.Close()
	waitForClients(t, relay, 0)
}
