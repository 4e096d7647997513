package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Hub maintains the active observer connections per room and fans outbound
// engine events out to them. Observers only receive; all game commands
// travel over the REST API and are serialized by the session controller.
type Hub struct {
	ctx    context.Context
	logger *zap.SugaredLogger

	// Registered clients by roomID -> playerID -> client.
	clients      map[string]map[string]*Client
	clientsMutex sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomMessage
}

// roomMessage is a fan-out request. An empty playerID broadcasts to the
// whole room.
type roomMessage struct {
	roomID   string
	playerID string
	data     []byte
}

// Client is one observer connection.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	roomID   string
	playerID string
}

// NewHub creates a hub. Run must be started on its own goroutine.
func NewHub(ctx context.Context, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		ctx:        ctx,
		logger:     logger,
		clients:    make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomMessage, 256),
	}
}

// Run processes registration and fan-out until the context ends.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.clientsMutex.Lock()
			room, ok := h.clients[client.roomID]
			if !ok {
				room = make(map[string]*Client)
				h.clients[client.roomID] = room
			}
			// A reconnecting player replaces their previous connection.
			if prev, ok := room[client.playerID]; ok {
				close(prev.send)
			}
			room[client.playerID] = client
			h.clientsMutex.Unlock()
			h.logger.Infow("Observer connected", "roomId", client.roomID, "playerId", client.playerID)

		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if room, ok := h.clients[client.roomID]; ok {
				if current, ok := room[client.playerID]; ok && current == client {
					delete(room, client.playerID)
					close(client.send)
					if len(room) == 0 {
						delete(h.clients, client.roomID)
					}
				}
			}
			h.clientsMutex.Unlock()
			h.logger.Infow("Observer disconnected", "roomId", client.roomID, "playerId", client.playerID)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg *roomMessage) {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	room, ok := h.clients[msg.roomID]
	if !ok {
		return
	}
	for playerID, client := range room {
		if msg.playerID != "" && msg.playerID != playerID {
			continue
		}
		select {
		case client.send <- msg.data:
		default:
			// Slow consumer; drop the message rather than stall the room.
			h.logger.Warnw("Dropping message for slow observer", "roomId", msg.roomID, "playerId", playerID)
		}
	}
}

// BroadcastToRoom sends a message to every observer of a room.
func (h *Hub) BroadcastToRoom(roomID string, message []byte) {
	select {
	case h.broadcast <- &roomMessage{roomID: roomID, data: message}:
	case <-h.ctx.Done():
	}
}

// SendToPlayer sends a message to a single observer in a room.
func (h *Hub) SendToPlayer(roomID, playerID string, message []byte) {
	select {
	case h.broadcast <- &roomMessage{roomID: roomID, playerID: playerID, data: message}:
	case <-h.ctx.Done():
	}
}

// HandleConnection registers a new observer connection and starts its pumps.
func (h *Hub) HandleConnection(conn *websocket.Conn, roomID, playerID string) {
	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 64),
		roomID:   roomID,
		playerID: playerID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains inbound frames. Observers send nothing meaningful, but the
// read loop is required to process pongs and detect closure.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debugw("Unexpected close", "roomId", c.roomID, "playerId", c.playerID, "error", err)
			}
			return
		}
	}
}

// writePump forwards outbound messages and keeps the connection alive with
// periodic pings.
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
