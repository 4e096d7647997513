package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	gameWs "github.com/emlakopoly/backend/internal/game/websocket"
)

// WebSocketHandler upgrades authenticated requests and hands the
// connection to the hub. Authentication happens in the JWT middleware
// before this handler runs; browsers pass the token as ?token= since
// they cannot set headers on WebSocket requests.
type WebSocketHandler struct {
	hub    *gameWs.Hub
	logger *zap.SugaredLogger
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *gameWs.Hub, logger *zap.SugaredLogger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// Upgrader is used to upgrade HTTP connections to WebSocket connections
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow connections from any origin; the deployment fronts this
	// with a reverse proxy that enforces origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleConnection upgrades the request and registers the client with
// the hub for its room.
func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	roomID := c.Param("roomId")
	if roomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing room ID")
	}

	playerID, ok := c.Get("playerID").(string)
	if !ok || playerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing player identity")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Errorf("Failed to upgrade connection: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to establish WebSocket connection")
	}

	h.logger.Infow("WebSocket connection established", "roomId", roomID, "playerId", playerID)

	h.hub.HandleConnection(conn, roomID, playerID)
	return nil
}
