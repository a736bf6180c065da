package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/dastan/game/engine"
	"github.com/wricardo/dastan/game/service"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session_id"))
	}))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session_id=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) service.GameEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event service.GameEvent
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func testEvent() service.GameEvent {
	return service.GameEvent{
		Type:      "state",
		Timestamp: time.Now(),
		State:     engine.NewEngineWithDefaults(engine.WithSeed(1)).GetState(),
	}
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, "reg")

	assert.Eventually(t, func() bool { return hub.ClientCount("reg") == 1 }, time.Second, 5*time.Millisecond)

	second := dial(t, server, "reg")
	assert.Eventually(t, func() bool { return hub.ClientCount("reg") == 2 }, time.Second, 5*time.Millisecond)

	conn.Close()
	second.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount("reg") == 0 }, time.Second, 5*time.Millisecond)

	hub.mu.RLock()
	_, exists := hub.sessions["reg"]
	hub.mu.RUnlock()
	assert.False(t, exists, "empty sessions are cleaned up")
}

func TestHub_BroadcastToSession(t *testing.T) {
	hub, server := startHub(t)
	a := dial(t, server, "game")
	b := dial(t, server, "game")
	other := dial(t, server, "other")
	require.Eventually(t, func() bool {
		return hub.ClientCount("game") == 2 && hub.ClientCount("other") == 1
	}, time.Second, 5*time.Millisecond)

	hub.BroadcastToSession("game", testEvent())

	for _, conn := range []*websocket.Conn{a, b} {
		event := readEvent(t, conn)
		assert.Equal(t, "game", event.SessionID)
		assert.Equal(t, "state", event.Type)
		require.NotNil(t, event.State)
		assert.Equal(t, 6, event.State.Rows)
		assert.Equal(t, "Player One", event.State.CurrentPlayer)
		assert.Equal(t, engine.Jazair, event.State.Offer)
	}

	other.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "spectators of other sessions receive nothing")
}

func TestHub_LateSpectatorGetsLatestState(t *testing.T) {
	hub, server := startHub(t)
	hub.BroadcastToSession("late", service.GameEvent{Type: "game_over", State: &engine.GameState{Turn: 9, GameOver: true}})

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.latest["late"] != nil
	}, time.Second, 5*time.Millisecond)

	conn := dial(t, server, "late")
	event := readEvent(t, conn)
	assert.Equal(t, "game_over", event.Type)
	assert.Equal(t, 9, event.State.Turn)
	assert.True(t, event.State.GameOver)
}

func TestHub_StopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	done := make(chan struct{})
	go func() {
		hub.BroadcastToSession("x", service.GameEvent{})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked after the hub stopped")
	}
}

func TestHub_ImplementsStateBroadcaster(t *testing.T) {
	var _ service.StateBroadcaster = NewHub()
}

func TestHub_BroadcastDropsWhenQueueFull(t *testing.T) {
	hub := NewHub()
	for i := 0; i < sendBuffer; i++ {
		hub.BroadcastToSession("full", testEvent())
	}

	done := make(chan struct{})
	go func() {
		hub.BroadcastToSession("full", testEvent())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full queue")
	}
	assert.Len(t, hub.broadcast, sendBuffer)
}
