package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/dastan/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators never send anything but control frames.
	maxMessageSize = 512

	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Spectating is read-only
		return true
	},
}

// Client is one spectator connection
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans game events out to the spectators of each session. All map
// mutations happen on the Run goroutine.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]bool
	latest   map[string][]byte

	broadcast  chan service.GameEvent
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		latest:     make(map[string][]byte),
		broadcast:  make(chan service.GameEvent, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop and blocks until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to sessionID.
// The newest state of the session, if any, is sent straight away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// BroadcastToSession queues event for every spectator of sessionID. It never
// blocks the game: events are dropped when the queue is full or the hub has
// stopped.
func (h *Hub) BroadcastToSession(sessionID string, event service.GameEvent) {
	event.SessionID = sessionID
	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
		log.Warn().Str("session_id", sessionID).Str("type", event.Type).Msg("broadcast queue full, dropping game event")
	}
}

// ClientCount returns the number of spectators of a session
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true
	total := len(h.sessions[client.sessionID])
	latest := h.latest[client.sessionID]
	h.mu.Unlock()

	if latest != nil {
		client.send <- latest
	}

	log.Info().Str("session_id", client.sessionID).Int("clients", total).Msg("spectator registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	log.Info().Str("session_id", client.sessionID).Int("clients", len(clients)).Msg("spectator unregistered")
}

func (h *Hub) broadcastEvent(event service.GameEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("session_id", event.SessionID).Msg("failed to marshal game event")
		return
	}

	h.mu.Lock()
	h.latest[event.SessionID] = data
	var slow []*Client
	for client := range h.sessions[event.SessionID] {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.Unlock()

	for _, client := range slow {
		log.Warn().Str("session_id", event.SessionID).Msg("dropping slow spectator")
		h.unregisterClient(client)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.sessions {
		for client := range clients {
			close(client.send)
		}
		delete(h.sessions, id)
	}
}

// readPump discards anything a spectator sends and unregisters it when the
// connection drops.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("session_id", c.sessionID).Msg("websocket closed")
			}
			return
		}
	}
}

// writePump sends one JSON event per text frame and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
