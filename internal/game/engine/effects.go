package engine

import "github.com/emlakopoly/backend/internal/game/board"

// resolveLanding applies the consequence of the player's current tile. A
// card-induced relocation resolves the new landing too, so compound effects
// (move, draw, move again) settle in one command.
func (s *Session) resolveLanding(p *Player) {
	tile, ok := s.Board.Tile(p.Position)
	if !ok {
		return
	}

	switch tile.Kind {
	case board.TileProperty, board.TileStation, board.TileUtility:
		s.resolveOwnable(p, tile)
	case board.TileTax:
		s.resolveTax(p, tile)
	case board.TileGoToJail:
		s.enterJail(p)
	case board.TileChance:
		s.drawAndApply(p, "chance", s.Chance)
	case board.TileCommunityFund:
		s.drawAndApply(p, "communityFund", s.CommunityFund)
	case board.TileStart, board.TileJail, board.TileFreeParking:
		// No monetary effect.
	}
}

// resolveOwnable handles landing on a purchasable tile: offer a purchase
// when unowned, collect rent when owned by someone else, offer construction
// when the lander holds the full group.
func (s *Session) resolveOwnable(p *Player, tile board.Tile) {
	ownerID, owned := s.Ownership[tile.ID]

	if !owned {
		s.Phase = PhaseDeciding
		return
	}

	if ownerID != p.ID {
		owner := s.playerByID(ownerID)
		if owner == nil || owner.Bankrupt {
			return
		}
		s.transfer(p, owner, s.rent(tile), TxRent, tile.ID)
		return
	}

	if s.buildAvailable(p, tile) {
		s.Phase = PhaseDeciding
	}
}

// rent computes what a visitor owes. Properties scale their base rent with
// the construction level; stations and utilities charge their configured
// flat base.
func (s *Session) rent(tile board.Tile) int {
	if tile.Kind != board.TileProperty {
		return tile.BaseRent
	}
	return tile.BaseRent * (1 + s.Construction[tile.ID])
}

// buildAvailable reports whether the player may add a construction level on
// the tile right now.
func (s *Session) buildAvailable(p *Player, tile board.Tile) bool {
	if tile.Kind != board.TileProperty {
		return false
	}
	if !s.ownsFullGroup(p.ID, tile.Group) {
		return false
	}
	return s.Construction[tile.ID] < s.Rules.MaxBuildLevel
}

// resolveTax debits a fixed amount, or for percentage taxes a rate over cash
// plus total property face value.
func (s *Session) resolveTax(p *Player, tile board.Tile) {
	amount := tile.TaxAmount
	if tile.TaxRate > 0 {
		basis := p.Cash + s.propertyFaceValue(p)
		amount = int(float64(basis) * tile.TaxRate)
	}
	s.debitToBank(p, amount, TxTax, tile.ID)
}

// drawAndApply draws exactly one card for the landing, broadcasts it, then
// applies the effect.
func (s *Session) drawAndApply(p *Player, deckName string, deck *board.Deck) {
	card := deck.Draw(s.rng)
	s.emit(Event{Type: EventCardDrawn, Payload: CardDrawnPayload{
		PlayerID: p.ID,
		Deck:     deckName,
		Card:     card,
	}})
	s.applyCard(p, card)
}

// applyCard applies one drawn card. Relocations resolve the new landing,
// which may draw again on another chance tile.
func (s *Session) applyCard(p *Player, card board.Card) {
	switch card.Effect {
	case board.EffectCashDelta:
		if card.Amount >= 0 {
			s.creditFromBank(p, card.Amount, TxCard, 0)
		} else {
			s.debitToBank(p, -card.Amount, TxCard, 0)
		}

	case board.EffectAbsoluteMove:
		if card.Target == s.Board.JailIndex() {
			s.enterJail(p)
			return
		}
		s.moveTo(p, card.Target)
		s.resolveLanding(p)

	case board.EffectRelativeStep:
		n := s.Board.Len()
		p.Position = ((p.Position+card.Amount)%n + n) % n
		s.resolveLanding(p)

	case board.EffectPayAllOthers:
		for _, other := range s.Players {
			if other == p || other.Bankrupt {
				continue
			}
			s.transfer(p, other, card.Amount, TxCard, 0)
			if p.Bankrupt {
				return
			}
		}

	case board.EffectCollectFromAllOthers:
		for _, other := range s.Players {
			if other == p || other.Bankrupt {
				continue
			}
			s.transfer(other, p, card.Amount, TxCard, 0)
		}

	case board.EffectMoveToNearestStation:
		target := s.Board.NextStationFrom(p.Position)
		if target < 0 {
			return
		}
		s.moveTo(p, target)
		s.resolveLanding(p)
	}
}

// BuyTile purchases the tile the current player stands on. Valid only in
// the Deciding phase for an unowned purchasable tile with sufficient cash.
func (s *Session) BuyTile(playerID string) ([]Event, error) {
	s.events = nil
	if s.Status != StatusActive {
		return nil, ErrSessionNotActive
	}
	p := s.playerByID(playerID)
	if p == nil {
		return nil, ErrUnknownSessionOrPlayer
	}
	if p != s.CurrentPlayer() {
		return nil, ErrNotYourTurn
	}
	if s.Phase != PhaseDeciding {
		return nil, ErrInvalidPhase
	}
	tile, ok := s.Board.Tile(p.Position)
	if !ok || !tile.Purchasable() {
		return nil, ErrTileUnavailable
	}
	if _, owned := s.Ownership[tile.ID]; owned {
		return nil, ErrTileUnavailable
	}
	if p.Cash < tile.Price {
		return nil, ErrInsufficientFunds
	}

	s.debitToBank(p, tile.Price, TxPurchase, tile.ID)
	s.Ownership[tile.ID] = p.ID
	p.OwnedTiles[tile.ID] = true

	if !s.buildAvailable(p, tile) {
		s.completeOrReroll()
	}
	return s.drain(), nil
}

// Build adds one construction level on a tile of a fully owned group. The
// player stays in Deciding while further levels remain affordable actions.
func (s *Session) Build(playerID string, tileID int) ([]Event, error) {
	s.events = nil
	if s.Status != StatusActive {
		return nil, ErrSessionNotActive
	}
	p := s.playerByID(playerID)
	if p == nil {
		return nil, ErrUnknownSessionOrPlayer
	}
	if p != s.CurrentPlayer() {
		return nil, ErrNotYourTurn
	}
	if s.Phase != PhaseDeciding {
		return nil, ErrInvalidPhase
	}
	tile, ok := s.Board.Tile(tileID)
	if !ok || tile.Kind != board.TileProperty {
		return nil, ErrTileUnavailable
	}
	if s.Ownership[tile.ID] != p.ID {
		return nil, ErrTileUnavailable
	}
	if !s.ownsFullGroup(p.ID, tile.Group) {
		return nil, ErrMonopolyRequired
	}
	if s.Construction[tile.ID] >= s.Rules.MaxBuildLevel {
		return nil, ErrConstructionCapReached
	}
	if p.Cash < tile.ConstructionCost {
		return nil, ErrInsufficientFunds
	}

	s.debitToBank(p, tile.ConstructionCost, TxConstruction, tile.ID)
	s.Construction[tile.ID]++

	if !s.anyBuildAvailable(p) {
		s.completeOrReroll()
	}
	return s.drain(), nil
}

// anyBuildAvailable reports whether the player can still afford another
// level anywhere in a fully owned group.
func (s *Session) anyBuildAvailable(p *Player) bool {
	for tileID := range p.OwnedTiles {
		tile, ok := s.Board.Tile(tileID)
		if !ok {
			continue
		}
		if s.buildAvailable(p, tile) && p.Cash >= tile.ConstructionCost {
			return true
		}
	}
	return false
}
