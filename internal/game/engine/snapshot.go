package engine

// PlayerSnapshot is one player's public ledger view.
type PlayerSnapshot struct {
	ID       string `json:"playerId"`
	Name     string `json:"name"`
	Cash     int    `json:"cash"`
	Position int    `json:"position"`
	Owned    []int  `json:"ownedTiles"`
	Bankrupt bool   `json:"bankrupt"`
}

// Snapshot is the full ledger/ownership/construction view broadcast to the
// room after every mutation. Observers render from this; they never
// recompute effects themselves.
type Snapshot struct {
	SessionID     string           `json:"sessionId"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	HostID        string           `json:"hostId"`
	Status        SessionStatus    `json:"status"`
	Players       []PlayerSnapshot `json:"players"`
	CurrentTurn   int              `json:"currentTurn"`
	CurrentPlayer string           `json:"currentPlayerId,omitempty"`
	Phase         TurnPhase        `json:"phase"`
	DoublesStreak int              `json:"doublesStreak"`
	Ownership     map[int]string   `json:"ownership"`
	Construction  map[int]int      `json:"construction"`
	WinnerID      string           `json:"winnerId,omitempty"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	players := make([]PlayerSnapshot, 0, len(s.Players))
	for _, p := range s.Players {
		owned := make([]int, 0, len(p.OwnedTiles))
		for id := range p.OwnedTiles {
			owned = append(owned, id)
		}
		players = append(players, PlayerSnapshot{
			ID:       p.ID,
			Name:     p.Name,
			Cash:     p.Cash,
			Position: p.Position,
			Owned:    owned,
			Bankrupt: p.Bankrupt,
		})
	}
	ownership := make(map[int]string, len(s.Ownership))
	for k, v := range s.Ownership {
		ownership[k] = v
	}
	construction := make(map[int]int, len(s.Construction))
	for k, v := range s.Construction {
		construction[k] = v
	}
	snap := Snapshot{
		SessionID:     s.ID,
		Code:          s.Code,
		Name:          s.Name,
		HostID:        s.HostID,
		Status:        s.Status,
		Players:       players,
		CurrentTurn:   s.CurrentTurn,
		Phase:         s.Phase,
		DoublesStreak: s.DoublesStreak,
		Ownership:     ownership,
		Construction:  construction,
		WinnerID:      s.WinnerID,
	}
	if cp := s.CurrentPlayer(); cp != nil {
		snap.CurrentPlayer = cp.ID
	}
	return snap
}
