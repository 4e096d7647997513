package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/db/redis"
	"github.com/emlakopoly/backend/internal/queue"
)

// Connectivity check for the settlement queue backend. Run with
// REDIS_URI set; exits non-zero on any failure.
func main() {
	uri := os.Getenv("REDIS_URI")
	if uri == "" {
		fmt.Println("Error: REDIS_URI environment variable is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger, _ := zap.NewDevelopment()
	sugar := logger.Sugar()
	defer logger.Sync()

	fmt.Println("Attempting to connect to Redis...")
	client, err := redis.Connect(ctx, uri, sugar)
	if err != nil {
		fmt.Printf("Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println("Connection established, attempting to ping...")
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		fmt.Printf("Failed to ping Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to Redis! Response: %s\n", pong)

	fmt.Println("\nTrying to set and get a test value...")

	testKey := "test_connection"
	testValue := fmt.Sprintf("Test value at %s", time.Now().Format(time.RFC3339))

	if err := client.Set(ctx, testKey, testValue, 5*time.Minute).Err(); err != nil {
		fmt.Printf("Failed to set test value: %v\n", err)
		os.Exit(1)
	}

	val, err := client.Get(ctx, testKey).Result()
	if err != nil {
		fmt.Printf("Failed to get test value: %v\n", err)
		os.Exit(1)
	}

	if val == testValue {
		fmt.Println("Successfully set and retrieved test value!")
	} else {
		fmt.Printf("Warning: Retrieved value doesn't match: got %s, want %s\n", val, testValue)
	}

	// Report the settlement queue depth so stuck workers are visible
	q, err := queue.NewRedisQueue(uri, logger)
	if err != nil {
		fmt.Printf("Failed to open settlement queue: %v\n", err)
		os.Exit(1)
	}
	defer q.Close()

	depth, err := q.QueueLength()
	if err != nil {
		fmt.Printf("Failed to read settlement queue length: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nSettlement queue depth: %d\n", depth)
}
