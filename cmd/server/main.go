package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/api"
	"github.com/emlakopoly/backend/internal/config"
	"github.com/emlakopoly/backend/internal/db/mongodb"
	"github.com/emlakopoly/backend/internal/db/redis"
	"github.com/emlakopoly/backend/internal/game/engine"
	"github.com/emlakopoly/backend/internal/game/manager"
	"github.com/emlakopoly/backend/internal/queue"
)

func main() {
	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB and Redis back the settlement archive only. Rooms live in
	// memory, so the server still serves games when either is down.
	mongoClient, err := mongodb.Connect(ctx, cfg.MongoDB.URI, sugar)
	if err != nil {
		sugar.Warnf("MongoDB unavailable, settlements will not be archived: %v", err)
		mongoClient = nil
	} else {
		sugar.Info("Connected to MongoDB")
		defer func() {
			if err := mongoClient.Disconnect(ctx); err != nil {
				sugar.Errorf("Failed to disconnect from MongoDB: %v", err)
			}
		}()
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis.URI, sugar)
	if err != nil {
		sugar.Warnf("Redis unavailable, settlement queue disabled: %v", err)
		redisClient = nil
	} else {
		sugar.Info("Connected to Redis")
		defer func() {
			if err := redisClient.Close(); err != nil {
				sugar.Errorf("Failed to close Redis connection: %v", err)
			}
		}()
	}

	// Session controller with game rules from config
	rules := engine.DefaultRules()
	if cfg.Game.InitialCash > 0 {
		rules.InitialCash = cfg.Game.InitialCash
	}
	if cfg.Game.PassStartBonus > 0 {
		rules.PassStartBonus = cfg.Game.PassStartBonus
	}
	controller := manager.NewSessionController(ctx, sugar, manager.Options{
		Rules:      rules,
		MaxPlayers: cfg.Game.MaxPlayers,
		MinPlayers: cfg.Game.MinimumPlayersToStart,
	})
	sugar.Info("Session controller initialized")

	// API server wires the hub and settlement queue into the controller
	server := api.NewServer(cfg, controller, mongoClient, redisClient, sugar)

	// Settlement worker drains the queue into MongoDB
	var worker *queue.Worker
	if server.MessageQueue() != nil && mongoClient != nil {
		store := mongodb.NewSettlementStore(mongoClient, cfg.MongoDB.Database, cfg.MongoDB.SettlementColl)
		worker = queue.NewWorker(server.MessageQueue(), store, logger)
		worker.Start()
		sugar.Info("Settlement worker started")
	}

	// Start the server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Failed to start the server: %v", err)
		}
	}()
	sugar.Infof("Server started on port %d", cfg.Server.Port)

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if worker != nil {
		worker.Stop()
		sugar.Info("Settlement worker stopped")
	}

	sugar.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		sugar.Fatalf("Server forced to shutdown: %v", err)
	}

	sugar.Info("Server exited properly")
}
