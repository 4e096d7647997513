package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/api/handlers"
	"github.com/emlakopoly/backend/internal/api/middleware/auth"
	"github.com/emlakopoly/backend/internal/config"
	"github.com/emlakopoly/backend/internal/game/manager"
	"github.com/emlakopoly/backend/internal/game/websocket"
	"github.com/emlakopoly/backend/internal/queue"
)

// CustomValidator is the request validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// RequestMetrics tracks metrics for API requests
type RequestMetrics struct {
	RequestCount map[string]int
	DurationSum  map[string]float64
	mutex        sync.RWMutex
}

// Server represents the API server
type Server struct {
	echo         *echo.Echo
	cfg          *config.Config
	controller   *manager.SessionController
	wsHub        *websocket.Hub
	logger       *zap.SugaredLogger
	metrics      *RequestMetrics
	mongoClient  *mongo.Client
	redisClient  *redis.Client
	messageQueue *queue.RedisQueue
}

// NewServer creates a new API server. mongoClient and redisClient may be
// nil: rooms still run in memory, only settlement archiving is skipped.
func NewServer(cfg *config.Config, controller *manager.SessionController, mongoClient *mongo.Client, redisClient *redis.Client, logger *zap.SugaredLogger) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Validator = &CustomValidator{validator: validator.New()}

	// Settlement queue, only when Redis is up
	var redisQueue *queue.RedisQueue
	if redisClient != nil {
		var err error
		redisQueue, err = queue.NewRedisQueue(cfg.Redis.URI, logger.Desugar())
		if err != nil {
			logger.Warnf("Failed to initialize settlement queue: %v", err)
		} else {
			logger.Info("Settlement queue initialized")
			controller.SetSettlementQueue(redisQueue)
		}
	}

	wsHub := websocket.NewHub(context.Background(), logger)
	controller.SetWebSocketHub(wsHub)

	metrics := &RequestMetrics{
		RequestCount: make(map[string]int),
		DurationSum:  make(map[string]float64),
	}

	server := &Server{
		echo:         e,
		cfg:          cfg,
		controller:   controller,
		wsHub:        wsHub,
		logger:       logger,
		metrics:      metrics,
		mongoClient:  mongoClient,
		redisClient:  redisClient,
		messageQueue: redisQueue,
	}

	server.configureMiddleware()
	server.configureRoutes()

	go wsHub.Run()

	// The settlement worker is started in main, not here.

	return server
}

// MessageQueue exposes the settlement queue, nil when Redis is down.
func (s *Server) MessageQueue() *queue.RedisQueue {
	return s.messageQueue
}

// configureMiddleware sets up Echo middleware
func (s *Server) configureMiddleware() {
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.RequestID())

	s.echo.Use(s.metricsMiddleware)

	// Attach a request-scoped structured logger
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			c.Set("requestID", requestID)

			requestLogger := s.logger.With(
				"requestID", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"clientIP", c.RealIP(),
			)
			c.Set("logger", requestLogger)

			return next(c)
		}
	})
}

// metricsMiddleware records metrics for each request
func (s *Server) metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		duration := time.Since(start).Seconds()
		key := c.Request().Method + ":" + c.Request().URL.Path + ":" + strconv.Itoa(c.Response().Status)

		s.metrics.mutex.Lock()
		s.metrics.RequestCount[key]++
		s.metrics.DurationSum[key] += duration
		s.metrics.mutex.Unlock()

		return err
	}
}

// configureRoutes sets up API routes
func (s *Server) configureRoutes() {
	gameHandler := handlers.NewGameHandler(s.controller, s.logger)
	authHandler := handlers.NewAuthHandler(s.cfg, s.logger)
	wsHandler := handlers.NewWebSocketHandler(s.wsHub, s.logger)
	healthHandler := handlers.NewHealthHandler(s.mongoClient, s.redisClient, s.logger)

	apiV1 := s.echo.Group("/api/v1")

	// Authentication routes (no JWT required)
	authGroup := apiV1.Group("/auth")
	authGroup.POST("/guest", authHandler.GuestLogin)

	jwtMiddleware := auth.JWTMiddleware(s.cfg.JWT.Secret)

	// Room routes (JWT required)
	roomGroup := apiV1.Group("/rooms", jwtMiddleware)
	roomGroup.POST("", gameHandler.CreateRoom)
	roomGroup.GET("", gameHandler.ListRooms)
	roomGroup.GET("/:roomId", gameHandler.GetRoomState)
	roomGroup.POST("/:roomId/join", gameHandler.JoinRoom)
	roomGroup.POST("/:roomId/leave", gameHandler.LeaveRoom)
	roomGroup.POST("/:roomId/start", gameHandler.StartSession)

	// Game action routes (JWT required)
	actionGroup := apiV1.Group("/rooms/:roomId/actions", jwtMiddleware)
	actionGroup.POST("/roll-dice", gameHandler.RollDice)
	actionGroup.POST("/buy-tile", gameHandler.BuyTile)
	actionGroup.POST("/build", gameHandler.Build)
	actionGroup.POST("/end-turn", gameHandler.EndTurn)
	actionGroup.POST("/trade", gameHandler.ProposeTrade)
	actionGroup.POST("/trade/:tradeId/respond", gameHandler.RespondTrade)

	// WebSocket route (JWT required, token via query param)
	s.echo.GET("/ws/:roomId", wsHandler.HandleConnection, jwtMiddleware)

	// Health check (no auth required)
	s.echo.GET("/health", healthHandler.Check)

	// Basic request metrics
	s.echo.GET("/metrics", func(c echo.Context) error {
		s.metrics.mutex.RLock()
		defer s.metrics.mutex.RUnlock()
		return c.JSON(http.StatusOK, map[string]interface{}{
			"requestCount": s.metrics.RequestCount,
			"durationSum":  s.metrics.DurationSum,
		})
	})
}

// Start starts the API server
func (s *Server) Start() error {
	address := s.cfg.Server.Host + ":" + strconv.Itoa(s.cfg.Server.Port)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the API server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.messageQueue != nil {
		if err := s.messageQueue.Close(); err != nil {
			s.logger.Errorf("Failed to close settlement queue: %v", err)
		}
	}
	return s.echo.Shutdown(ctx)
}
