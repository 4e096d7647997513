package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/emlakopoly/backend/internal/api/middleware/auth"
)

// Development helper: mints a guest token without going through the auth
// endpoint, for curl and WebSocket testing.
func main() {
	name := flag.String("name", "Test Oyuncu", "player display name")
	hours := flag.Int("hours", 24, "token validity in hours")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("Error: JWT_SECRET environment variable is not set")
		os.Exit(1)
	}

	playerID := uuid.New().String()
	token, err := auth.GenerateJWT(playerID, *name, secret, *hours)
	if err != nil {
		fmt.Printf("Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Player ID: %s\n", playerID)
	fmt.Printf("Valid JWT token:\n%s\n", token)
}
