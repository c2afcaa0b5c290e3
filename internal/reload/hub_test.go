package reload

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestServer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readEvent(t *testing.T, ws *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(msg, &out))
	return out
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	router := gin.New()
	router.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	c1 := dialTestServer(t, srv)
	c2 := dialTestServer(t, srv)

	assert.Equal(t, "welcome", readEvent(t, c1)["type"])
	assert.Equal(t, "welcome", readEvent(t, c2)["type"])

	// both clients are registered before broadcasting
	require.Eventually(t, func() bool {
		return hub.Stats().Clients == 2
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastJSON(NewSnapshotEvent(7, "2024-06-01T00:00:00Z"))

	for _, ws := range []*websocket.Conn{c1, c2} {
		ev := readEvent(t, ws)
		assert.Equal(t, "snapshot.updated", ev["type"])
		assert.Equal(t, float64(7), ev["total"])
	}
}

func TestHub_RemoveOnDisconnect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	router := gin.New()
	router.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(router)
	defer srv.Close()

	ws := dialTestServer(t, srv)
	readEvent(t, ws) // welcome

	require.NoError(t, ws.Close())
	require.Eventually(t, func() bool {
		return hub.Stats().Clients == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	hub := NewHub()
	// no clients registered; must not panic
	hub.BroadcastJSON(NewSnapshotEvent(0, ""))
	assert.Zero(t, hub.Stats().Clients)
}
