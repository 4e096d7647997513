package engine

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emlakopoly/backend/internal/game/board"
)

func testBoard() *board.Board {
	return board.Default()
}

// newTestSession seats the given players and starts the session. The first
// player is host and rolls first.
func newTestSession(t *testing.T, players ...string) *Session {
	t.Helper()
	require.GreaterOrEqual(t, len(players), 2)

	s := NewSession("sess-1", "ABC234", "Test Oda", players[0], board.Default(), DefaultRules(), 42)
	for i, id := range players {
		require.NoError(t, s.AddPlayer(id, "Oyuncu "+strconv.Itoa(i+1)))
	}
	_, err := s.Start(players[0])
	require.NoError(t, err)
	return s
}

// scriptRolls replaces the dice with a fixed sequence; the last roll repeats.
func scriptRolls(s *Session, rolls ...[2]int) {
	i := 0
	s.roller = func() (int, int) {
		r := rolls[i]
		if i < len(rolls)-1 {
			i++
		}
		return r[0], r[1]
	}
}

func totalCash(s *Session) int {
	total := 0
	for _, p := range s.Players {
		total += p.Cash
	}
	return total
}

// grantTile hands a tile to a player directly, bypassing purchase.
func grantTile(t *testing.T, s *Session, playerID string, tileID int) {
	t.Helper()
	p := s.playerByID(playerID)
	require.NotNil(t, p)
	s.Ownership[tileID] = playerID
	p.OwnedTiles[tileID] = true
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}
