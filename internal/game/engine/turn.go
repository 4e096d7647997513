package engine

// RollDice runs the active player's roll: server-side dice, movement with
// pass-start credit on wrap, landing resolution and the doubles rule. A run
// of three consecutive doubles sends the player straight to jail and ends
// the turn.
func (s *Session) RollDice(playerID string) ([]Event, error) {
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
	if s.Phase != PhaseAwaitingRoll {
		return nil, ErrInvalidPhase
	}

	d1, d2 := s.roller()
	doubles := d1 == d2
	if doubles {
		s.DoublesStreak++
	} else {
		s.DoublesStreak = 0
	}
	s.emit(Event{Type: EventDiceRolled, Payload: DiceRolledPayload{
		PlayerID: p.ID,
		Die1:     d1,
		Die2:     d2,
		Doubles:  doubles,
	}})

	if doubles && s.DoublesStreak >= 3 {
		// Third consecutive double: straight to jail, turn over.
		s.enterJail(p)
		s.advanceTurn()
		return s.drain(), nil
	}

	s.rerollPending = doubles

	s.Phase = PhaseMoving
	s.moveBy(p, d1+d2)

	s.Phase = PhaseResolving
	s.resolveLanding(p)
	s.finishResolution(p)

	return s.drain(), nil
}

// EndTurn closes the Deciding/TurnComplete phase. With a doubles reroll
// pending the same player returns to AwaitingRoll; otherwise the turn passes
// to the next solvent player. On a terminal session this is a no-op.
func (s *Session) EndTurn(playerID string) ([]Event, error) {
	s.events = nil
	if s.Status == StatusCompleted {
		return nil, nil
	}
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
	if s.Phase != PhaseDeciding && s.Phase != PhaseTurnComplete {
		return nil, ErrInvalidPhase
	}
	if s.rerollPending {
		s.rerollPending = false
		s.Phase = PhaseAwaitingRoll
		return s.drain(), nil
	}
	s.advanceTurn()
	return s.drain(), nil
}

// moveBy advances the player by steps, crediting the pass-start bonus when
// the position wraps past the start tile.
func (s *Session) moveBy(p *Player, steps int) {
	old := p.Position
	p.Position = (p.Position + steps) % s.Board.Len()
	if p.Position < old {
		s.creditFromBank(p, s.Rules.PassStartBonus, TxSalary, 0)
	}
}

// moveTo relocates the player to an absolute tile, crediting the pass-start
// bonus when the relocation wraps. Jail entries must go through enterJail
// instead.
func (s *Session) moveTo(p *Player, target int) {
	old := p.Position
	p.Position = target % s.Board.Len()
	if p.Position < old {
		s.creditFromBank(p, s.Rules.PassStartBonus, TxSalary, 0)
	}
}

// enterJail relocates the player to the jail tile. Jail entry never pays the
// pass-start bonus and cancels any pending doubles reroll.
func (s *Session) enterJail(p *Player) {
	p.Position = s.Board.JailIndex()
	s.rerollPending = false
	s.DoublesStreak = 0
}

// finishResolution settles the phase after a landing resolved. When the
// landing opened no decision the phase advances per the doubles rule.
func (s *Session) finishResolution(p *Player) {
	if s.Status != StatusActive {
		return
	}
	if p.Bankrupt {
		s.advanceTurn()
		return
	}
	if s.Phase == PhaseDeciding {
		return
	}
	s.completeOrReroll()
}

// completeOrReroll either hands the same player another roll (doubles) or
// marks the turn complete, awaiting the explicit end-turn command.
func (s *Session) completeOrReroll() {
	if s.rerollPending {
		s.rerollPending = false
		s.Phase = PhaseAwaitingRoll
		return
	}
	s.Phase = PhaseTurnComplete
}

// advanceTurn rotates to the next non-bankrupt player, scanning at most one
// full cycle.
func (s *Session) advanceTurn() {
	if s.Status != StatusActive {
		return
	}
	s.rerollPending = false
	s.DoublesStreak = 0
	n := len(s.Players)
	for i := 1; i <= n; i++ {
		idx := (s.CurrentTurn + i) % n
		if !s.Players[idx].Bankrupt {
			s.CurrentTurn = idx
			s.Phase = PhaseAwaitingRoll
			return
		}
	}
}
