package engine

import "github.com/emlakopoly/backend/internal/game/board"

// EventType identifies an outbound event emitted by the engine.
type EventType string

const (
	EventSessionStarted EventType = "sessionStarted"
	EventSessionState   EventType = "sessionState"
	EventSessionEnded   EventType = "sessionEnded"
	EventDiceRolled     EventType = "diceRolled"
	EventCardDrawn      EventType = "cardDrawn"
	EventTradeProposed  EventType = "tradeProposed"
	EventTradeResolved  EventType = "tradeResolved"
	EventPlayerBankrupt EventType = "playerBankrupt"
)

// Event is one outbound notification produced while applying a command.
// Events with a non-empty To field are delivered only to that player;
// everything else is broadcast to the whole room. The engine only computes
// effects and emits the results — observers render, they never re-derive.
type Event struct {
	Type    EventType   `json:"type"`
	To      string      `json:"-"`
	Payload interface{} `json:"payload,omitempty"`
}

// DiceRolledPayload reports a server-side dice outcome.
type DiceRolledPayload struct {
	PlayerID string `json:"playerId"`
	Die1     int    `json:"die1"`
	Die2     int    `json:"die2"`
	Doubles  bool   `json:"doubles"`
}

// CardDrawnPayload reports the single card drawn for a landing, so every
// observer sees the identical card.
type CardDrawnPayload struct {
	PlayerID string     `json:"playerId"`
	Deck     string     `json:"deck"`
	Card     board.Card `json:"card"`
}

// TradeResolvedPayload reports the outcome of a trade response.
type TradeResolvedPayload struct {
	ProposalID string `json:"proposalId"`
	Accepted   bool   `json:"accepted"`
	Reason     string `json:"reason,omitempty"`
}

// PlayerBankruptPayload reports a bankruptcy declaration.
type PlayerBankruptPayload struct {
	PlayerID string `json:"playerId"`
}

// SessionEndedPayload reports the terminal winner.
type SessionEndedPayload struct {
	WinnerID string `json:"winnerId"`
}
