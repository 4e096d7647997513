package engine

import "errors"

// Validation errors returned to the acting player. Every command is checked
// against these before any ledger mutation, so a rejected command never
// leaves partial state behind.
var (
	// ErrInvalidPhase means the action is not legal in the current turn phase.
	ErrInvalidPhase = errors.New("action not allowed in current turn phase")

	// ErrNotYourTurn means a turn-scoped action came from a non-current player.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrInsufficientFunds means the player cannot cover the required amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTileUnavailable means the tile is already owned or not ownable.
	ErrTileUnavailable = errors.New("tile unavailable")

	// ErrMonopolyRequired means construction was attempted without owning
	// the full group.
	ErrMonopolyRequired = errors.New("full group ownership required to build")

	// ErrConstructionCapReached means the tile is already at maximum level.
	ErrConstructionCapReached = errors.New("construction level cap reached")

	// ErrTradeValidationFailed means ownership or cash went stale between
	// proposal and acceptance.
	ErrTradeValidationFailed = errors.New("trade validation failed")

	// ErrUnknownSessionOrPlayer means the referenced session or player
	// does not exist.
	ErrUnknownSessionOrPlayer = errors.New("unknown session or player")

	// ErrSessionNotActive means the session has not started or has ended.
	ErrSessionNotActive = errors.New("session is not active")
)
