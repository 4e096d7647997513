package models

import (
	"time"

	"github.com/emlakopoly/backend/internal/game/engine"
)

// SessionRecord is the archived outcome of a completed session: the winner,
// each player's final ledger line and the full transaction log. Records are
// written once when a session ends; live sessions are never persisted.
type SessionRecord struct {
	SessionID    string               `bson:"sessionId" json:"sessionId"`
	Code         string               `bson:"code" json:"code"`
	Name         string               `bson:"name" json:"name"`
	WinnerID     string               `bson:"winnerId" json:"winnerId"`
	Players      []PlayerResult       `bson:"players" json:"players"`
	Transactions []engine.Transaction `bson:"transactions" json:"transactions"`
	EndedAt      time.Time            `bson:"endedAt" json:"endedAt"`
}

// PlayerResult is one player's final standing.
type PlayerResult struct {
	PlayerID  string `bson:"playerId" json:"playerId"`
	Name      string `bson:"name" json:"name"`
	FinalCash int    `bson:"finalCash" json:"finalCash"`
	Bankrupt  bool   `bson:"bankrupt" json:"bankrupt"`
}

// RecordFrom builds the archive record for a finished session.
func RecordFrom(s *engine.Session) SessionRecord {
	players := make([]PlayerResult, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, PlayerResult{
			PlayerID:  p.ID,
			Name:      p.Name,
			FinalCash: p.Cash,
			Bankrupt:  p.Bankrupt,
		})
	}
	return SessionRecord{
		SessionID:    s.ID,
		Code:         s.Code,
		Name:         s.Name,
		WinnerID:     s.WinnerID,
		Players:      players,
		Transactions: s.Transactions,
		EndedAt:      time.Now(),
	}
}
