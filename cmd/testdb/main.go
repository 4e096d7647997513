package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/db/mongodb"
)

// Connectivity check for the settlement archive. Run with
// MONGODB_URI set; exits non-zero on any failure.
func main() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		fmt.Println("Error: MONGODB_URI environment variable is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger, _ := zap.NewDevelopment()
	sugar := logger.Sugar()
	defer logger.Sync()

	fmt.Println("Attempting to connect to MongoDB...")
	client, err := mongodb.Connect(ctx, uri, sugar)
	if err != nil {
		fmt.Printf("Failed to connect to MongoDB: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	fmt.Println("Connection established, attempting to ping...")
	if err := client.Ping(ctx, nil); err != nil {
		fmt.Printf("Failed to ping MongoDB: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Successfully connected to MongoDB!")

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "emlakopoly"
	}
	fmt.Printf("\nChecking database: %s\n", dbName)

	db := client.Database(dbName)

	testColl := db.Collection("test_connection")
	doc := map[string]interface{}{
		"test":      "connection",
		"timestamp": time.Now(),
	}
	if _, err := testColl.InsertOne(ctx, doc); err != nil {
		fmt.Printf("Failed to insert test document: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Successfully inserted test document!")

	collections, err := db.ListCollectionNames(ctx, nil)
	if err != nil {
		fmt.Printf("Failed to list collections: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nCollections in database:")
	if len(collections) == 0 {
		fmt.Println("No collections found. Database is empty or not initialized.")
	} else {
		for _, collection := range collections {
			fmt.Printf("- %s\n", collection)
		}
	}
}
