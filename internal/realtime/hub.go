// Package realtime relays domain events to WebSocket subscribers,
// grouped into rooms per bounded context.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"callcrm_backend/platform/logger"
)

// Rooms clients can subscribe to.
const (
	RoomLeads     = "leads"
	RoomCampaigns = "campaigns"
	RoomCallLogs  = "call-logs"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware for the REST
	// API; the socket endpoint accepts any origin the browser presents.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// envelope is the wire format for outbound messages.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// command is the inbound subscribe/unsubscribe protocol.
type command struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

// client is one connected WebSocket peer.
type client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]bool
	mu    sync.RWMutex
}

func (c *client) subscribed(room string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rooms[room]
}

func (c *client) setSubscription(room string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.rooms[room] = true
	} else {
		delete(c.rooms, room)
	}
}

// Hub tracks connected clients and broadcasts room messages to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
	log     *logger.Logger
}

// NewHub creates an empty hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		log:     log,
	}
}

// ServeWS upgrades the request and runs the connection until it closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	c := &client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		rooms: make(map[string]bool),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("websocket client connected", "clients", count)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("websocket client disconnected", "clients", count)
}

// Broadcast sends an event to every client subscribed to room. A client
// whose send buffer is full misses the message rather than blocking the
// publisher.
func (h *Hub) Broadcast(room, event string, data interface{}) {
	payload, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error("websocket marshal failed", "event", event, "error", err.Error())
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.subscribed(room) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			h.log.Warn("websocket send buffer full, dropping message", "event", event)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every open connection.
func (h *Hub) Shutdown(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd command
		if err := json.Unmarshal(message, &cmd); err != nil {
			continue
		}
		switch cmd.Action {
		case "subscribe":
			if validRoom(cmd.Room) {
				c.setSubscription(cmd.Room, true)
			}
		case "unsubscribe":
			c.setSubscription(cmd.Room, false)
		}
	}
}

func (c *client) writePump() {
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

func validRoom(room string) bool {
	switch room {
	case RoomLeads, RoomCampaigns, RoomCallLogs:
		return true
	}
	return false
}
