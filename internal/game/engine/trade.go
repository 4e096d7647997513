package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// TradeStatus is the lifecycle state of a proposal.
type TradeStatus string

const (
	TradePending  TradeStatus = "PENDING"
	TradeAccepted TradeStatus = "ACCEPTED"
	TradeRejected TradeStatus = "REJECTED"
)

// TradeLeg is one side of a trade: a cash amount plus a set of tiles.
type TradeLeg struct {
	Cash    int   `json:"cash"`
	TileIDs []int `json:"tileIds"`
}

// TradeProposal is a pending two-party exchange. Proposals are independent
// of turn order and are re-validated at acceptance time, since ownership may
// have changed since the proposal was made.
type TradeProposal struct {
	ID      string      `json:"proposalId"`
	From    string      `json:"fromPlayerId"`
	To      string      `json:"toPlayerId"`
	Offer   TradeLeg    `json:"offer"`
	Request TradeLeg    `json:"request"`
	Status  TradeStatus `json:"status"`
}

func pairKey(from, to string) string {
	return from + "|" + to
}

// ProposeTrade stores a pending proposal and delivers it to the target
// player only. Every leg must be satisfiable against the current ledger at
// proposal time; the same checks run again at acceptance. A newer proposal
// from the same sender to the same target supersedes the previous one.
func (s *Session) ProposeTrade(from, to string, offer, request TradeLeg) ([]Event, error) {
	s.events = nil
	if s.Status != StatusActive {
		return nil, ErrSessionNotActive
	}
	proposer := s.playerByID(from)
	target := s.playerByID(to)
	if proposer == nil || target == nil || from == to {
		return nil, ErrUnknownSessionOrPlayer
	}
	if proposer.Bankrupt || target.Bankrupt {
		return nil, ErrUnknownSessionOrPlayer
	}
	if offer.Cash < 0 || request.Cash < 0 {
		return nil, fmt.Errorf("%w: negative cash leg", ErrTradeValidationFailed)
	}
	for _, id := range append(append([]int{}, offer.TileIDs...), request.TileIDs...) {
		if _, ok := s.Board.Tile(id); !ok {
			return nil, fmt.Errorf("%w: unknown tile %d", ErrTradeValidationFailed, id)
		}
	}

	proposal := &TradeProposal{
		ID:      uuid.New().String(),
		From:    from,
		To:      to,
		Offer:   offer,
		Request: request,
		Status:  TradePending,
	}
	if err := s.validateTrade(proposal, proposer, target); err != nil {
		return nil, err
	}

	// Supersede any outstanding proposal for this pair.
	if prevID, ok := s.pairOffers[pairKey(from, to)]; ok {
		delete(s.trades, prevID)
	}

	s.trades[proposal.ID] = proposal
	s.pairOffers[pairKey(from, to)] = proposal.ID

	s.emit(Event{Type: EventTradeProposed, To: to, Payload: proposal})
	return s.drain(), nil
}

// RespondTrade resolves a pending proposal. On accept, every leg is
// re-validated against the current ledger; a stale check aborts the whole
// trade and notifies both parties. On success all four legs apply as one
// atomic update.
func (s *Session) RespondTrade(proposalID, responderID string, accept bool) ([]Event, error) {
	s.events = nil
	if s.Status != StatusActive {
		return nil, ErrSessionNotActive
	}
	proposal, ok := s.trades[proposalID]
	if !ok || proposal.Status != TradePending {
		return nil, ErrUnknownSessionOrPlayer
	}
	if proposal.To != responderID {
		return nil, ErrNotYourTurn
	}

	s.removeProposal(proposal)

	if !accept {
		proposal.Status = TradeRejected
		s.emit(Event{Type: EventTradeResolved, Payload: TradeResolvedPayload{
			ProposalID: proposal.ID,
			Accepted:   false,
		}})
		return s.drain(), nil
	}

	from := s.playerByID(proposal.From)
	to := s.playerByID(proposal.To)
	if err := s.validateTrade(proposal, from, to); err != nil {
		proposal.Status = TradeRejected
		s.emit(Event{Type: EventTradeResolved, Payload: TradeResolvedPayload{
			ProposalID: proposal.ID,
			Accepted:   false,
			Reason:     "validation failed",
		}})
		return s.drain(), err
	}

	// All checks passed; apply the four legs as one update.
	from.Cash -= proposal.Offer.Cash
	to.Cash += proposal.Offer.Cash
	to.Cash -= proposal.Request.Cash
	from.Cash += proposal.Request.Cash
	if proposal.Offer.Cash > 0 {
		s.record(Transaction{Type: TxTrade, From: from.ID, To: to.ID, Amount: proposal.Offer.Cash})
	}
	if proposal.Request.Cash > 0 {
		s.record(Transaction{Type: TxTrade, From: to.ID, To: from.ID, Amount: proposal.Request.Cash})
	}
	for _, tileID := range proposal.Offer.TileIDs {
		s.transferTile(tileID, from, to)
	}
	for _, tileID := range proposal.Request.TileIDs {
		s.transferTile(tileID, to, from)
	}

	proposal.Status = TradeAccepted
	s.emit(Event{Type: EventTradeResolved, Payload: TradeResolvedPayload{
		ProposalID: proposal.ID,
		Accepted:   true,
	}})
	return s.drain(), nil
}

// validateTrade checks every leg against the current ledger. It runs both at
// proposal time and again at acceptance, since ownership and balances may
// have moved in between.
func (s *Session) validateTrade(proposal *TradeProposal, from, to *Player) error {
	if from == nil || to == nil || from.Bankrupt || to.Bankrupt {
		return fmt.Errorf("%w: party no longer in play", ErrTradeValidationFailed)
	}
	for _, tileID := range proposal.Offer.TileIDs {
		if s.Ownership[tileID] != from.ID {
			return fmt.Errorf("%w: tile %d no longer owned by proposer", ErrTradeValidationFailed, tileID)
		}
	}
	for _, tileID := range proposal.Request.TileIDs {
		if s.Ownership[tileID] != to.ID {
			return fmt.Errorf("%w: tile %d no longer owned by target", ErrTradeValidationFailed, tileID)
		}
	}
	if from.Cash < proposal.Offer.Cash {
		return fmt.Errorf("%w: proposer cash leg not covered", ErrTradeValidationFailed)
	}
	if to.Cash < proposal.Request.Cash {
		return fmt.Errorf("%w: target cash leg not covered", ErrTradeValidationFailed)
	}
	return nil
}

// transferTile moves a tile between owners. Construction on the tile's
// group is cleared, since the exchange breaks any monopoly that backed it.
func (s *Session) transferTile(tileID int, from, to *Player) {
	delete(from.OwnedTiles, tileID)
	to.OwnedTiles[tileID] = true
	s.Ownership[tileID] = to.ID
	if tile, ok := s.Board.Tile(tileID); ok && tile.Group != "" {
		s.clearGroupConstruction(tile.Group)
	}
	s.record(Transaction{Type: TxTrade, From: from.ID, To: to.ID, TileID: tileID})
}

func (s *Session) removeProposal(p *TradeProposal) {
	delete(s.trades, p.ID)
	if s.pairOffers[pairKey(p.From, p.To)] == p.ID {
		delete(s.pairOffers, pairKey(p.From, p.To))
	}
}

// PendingTrade returns a pending proposal by id.
func (s *Session) PendingTrade(id string) (*TradeProposal, bool) {
	p, ok := s.trades[id]
	return p, ok
}
