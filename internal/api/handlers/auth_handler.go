package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/api/middleware/auth"
	"github.com/emlakopoly/backend/internal/config"
)

// AuthHandler issues guest credentials. There are no persistent accounts;
// a guest token identifies one player for the lifetime of their rooms.
type AuthHandler struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(cfg *config.Config, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: logger,
	}
}

// GuestLoginRequest represents a guest login request
type GuestLoginRequest struct {
	Name string `json:"name" validate:"required,min=1,max=32"`
}

// GuestLoginResponse carries the issued identity and token
type GuestLoginResponse struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// GuestLogin issues a fresh player identity with a signed token.
func (h *AuthHandler) GuestLogin(c echo.Context) error {
	var req GuestLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	playerID := uuid.New().String()
	token, err := auth.GenerateJWT(playerID, req.Name, h.cfg.JWT.Secret, h.cfg.JWT.Expiration)
	if err != nil {
		h.logger.Errorf("Failed to generate token: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	h.logger.Infow("Guest login", "playerId", playerID, "name", req.Name)

	return c.JSON(http.StatusOK, GuestLoginResponse{
		PlayerID: playerID,
		Name:     req.Name,
		Token:    token,
	})
}
