package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/game/engine"
	"github.com/emlakopoly/backend/internal/game/manager"
)

// GameHandler maps room and game-action requests onto the session
// controller. Every action is validated and applied at the room's
// serialization point; the handler only translates transport.
type GameHandler struct {
	controller *manager.SessionController
	logger     *zap.SugaredLogger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(controller *manager.SessionController, logger *zap.SugaredLogger) *GameHandler {
	return &GameHandler{
		controller: controller,
		logger:     logger,
	}
}

// CreateRoomRequest represents a create room request
type CreateRoomRequest struct {
	RoomName string `json:"roomName"`
}

// TradeRequest represents a trade proposal request
type TradeRequest struct {
	ToPlayerID string          `json:"toPlayerId" validate:"required"`
	Offer      engine.TradeLeg `json:"offer"`
	Request    engine.TradeLeg `json:"request"`
}

// TradeResponseRequest represents a response to a pending trade
type TradeResponseRequest struct {
	Accept bool `json:"accept"`
}

// BuildRequest represents a construction request
type BuildRequest struct {
	TileID int `json:"tileId"`
}

// CreateRoom creates a new room with the requester seated as host.
func (h *GameHandler) CreateRoom(c echo.Context) error {
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	playerID := c.Get("playerID").(string)
	playerName, _ := c.Get("playerName").(string)

	roomID, code, err := h.controller.CreateRoom(playerID, playerName, req.RoomName)
	if err != nil {
		h.logger.Errorf("Failed to create room: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create room")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"roomId": roomID,
		"code":   code,
	})
}

// ListRooms lists all registered rooms.
func (h *GameHandler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rooms": h.controller.ListRooms(),
	})
}

// GetRoomState returns the full ledger snapshot of a room.
func (h *GameHandler) GetRoomState(c echo.Context) error {
	roomID := c.Param("roomId")
	if roomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing room ID")
	}

	snap, err := h.controller.Snapshot(roomID)
	if err != nil {
		return h.mapEngineError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

// JoinRoom seats the requester in a room.
func (h *GameHandler) JoinRoom(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)
	playerName, _ := c.Get("playerName").(string)

	if err := h.controller.JoinRoom(roomID, playerID, playerName); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LeaveRoom unseats the requester; only possible before the game starts.
func (h *GameHandler) LeaveRoom(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)

	if err := h.controller.LeaveRoom(roomID, playerID); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StartSession begins play; host only.
func (h *GameHandler) StartSession(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)

	h.logger.Infow("Start session request", "roomId", roomID, "playerId", playerID)

	if err := h.controller.StartSession(roomID, playerID); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RollDice rolls for the current player.
func (h *GameHandler) RollDice(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)

	if err := h.controller.RollDice(roomID, playerID); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BuyTile purchases the tile the current player stands on.
func (h *GameHandler) BuyTile(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)

	if err := h.controller.BuyTile(roomID, playerID); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Build adds one construction level on an owned tile.
func (h *GameHandler) Build(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)

	var req BuildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.controller.Build(roomID, playerID, req.TileID); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// EndTurn ends the current player's turn.
func (h *GameHandler) EndTurn(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)

	if err := h.controller.EndTurn(roomID, playerID); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ProposeTrade files a trade proposal to another player.
func (h *GameHandler) ProposeTrade(c echo.Context) error {
	roomID := c.Param("roomId")
	playerID := c.Get("playerID").(string)

	var req TradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.controller.ProposeTrade(roomID, playerID, req.ToPlayerID, req.Offer, req.Request); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RespondTrade accepts or rejects a pending trade proposal.
func (h *GameHandler) RespondTrade(c echo.Context) error {
	roomID := c.Param("roomId")
	tradeID := c.Param("tradeId")
	playerID := c.Get("playerID").(string)

	var req TradeResponseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.controller.RespondTrade(roomID, tradeID, playerID, req.Accept); err != nil {
		return h.mapEngineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// mapEngineError translates rule violations into HTTP errors. Validation
// failures reach only the originating actor; shared state is untouched.
func (h *GameHandler) mapEngineError(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownSessionOrPlayer):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrInvalidPhase),
		errors.Is(err, engine.ErrSessionNotActive):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrTileUnavailable),
		errors.Is(err, engine.ErrMonopolyRequired),
		errors.Is(err, engine.ErrConstructionCapReached),
		errors.Is(err, engine.ErrTradeValidationFailed):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
