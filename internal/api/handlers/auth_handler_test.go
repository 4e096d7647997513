package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/api/middleware/auth"
	"github.com/emlakopoly/backend/internal/config"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiration: 24},
	}
}

func TestGuestLogin(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(testConfig(), zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/guest", strings.NewReader(`{"name":"Ayşe"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GuestLogin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GuestLoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ayşe", resp.Name)
	assert.NotEmpty(t, resp.PlayerID)
	assert.NotEmpty(t, resp.Token)
}

func TestGuestLoginTokenCarriesIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(testConfig(), zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/guest", strings.NewReader(`{"name":"Mehmet"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GuestLogin(e.NewContext(req, rec)))

	var resp GuestLoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// The issued token must pass the middleware and carry the identity.
	authed := httptest.NewRequest(http.MethodGet, "/", nil)
	authed.Header.Set("Authorization", "Bearer "+resp.Token)
	c := e.NewContext(authed, httptest.NewRecorder())
	mw := auth.JWTMiddleware("test-secret")(func(c echo.Context) error { return nil })
	require.NoError(t, mw(c))
	assert.Equal(t, resp.PlayerID, c.Get("playerID"))
	assert.Equal(t, "Mehmet", c.Get("playerName"))
}

func TestGuestLoginRejectsMissingName(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(testConfig(), zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/guest", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.GuestLogin(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
