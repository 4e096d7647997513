package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRequiresHost(t *testing.T) {
	s := NewSession("s", "ABC234", "Oda", "p1", testBoard(), DefaultRules(), 1)
	require.NoError(t, s.AddPlayer("p1", "Ayşe"))
	require.NoError(t, s.AddPlayer("p2", "Mehmet"))

	_, err := s.Start("p2")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	events, err := s.Start("p1")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s.Status)
	assert.Equal(t, PhaseAwaitingRoll, s.Phase)
	assert.Equal(t, "p1", s.CurrentPlayer().ID)
	assert.Contains(t, eventTypes(events), EventSessionStarted)
}

func TestStartRequiresTwoPlayers(t *testing.T) {
	s := NewSession("s", "ABC234", "Oda", "p1", testBoard(), DefaultRules(), 1)
	require.NoError(t, s.AddPlayer("p1", "Ayşe"))

	_, err := s.Start("p1")
	assert.Error(t, err)
	assert.Equal(t, StatusLobby, s.Status)
}

func TestRollMovesAndOffersPurchase(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	scriptRolls(s, [2]int{1, 3})

	events, err := s.RollDice("p1")
	require.NoError(t, err)

	p := s.playerByID("p1")
	assert.Equal(t, 4, p.Position)
	assert.Equal(t, PhaseDeciding, s.Phase, "unowned property opens a purchase decision")
	assert.Contains(t, eventTypes(events), EventDiceRolled)
}

func TestRollRejectedOutOfTurn(t *testing.T) {
	s := newTestSession(t, "p1", "p2")

	_, err := s.RollDice("p2")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = s.RollDice("ghost")
	assert.ErrorIs(t, err, ErrUnknownSessionOrPlayer)
}

func TestRollRejectedInWrongPhase(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	scriptRolls(s, [2]int{1, 3})

	_, err := s.RollDice("p1")
	require.NoError(t, err)
	require.Equal(t, PhaseDeciding, s.Phase)

	_, err = s.RollDice("p1")
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestPassStartBonus(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	p := s.playerByID("p1")
	p.Position = 54
	scriptRolls(s, [2]int{1, 2})

	_, err := s.RollDice("p1")
	require.NoError(t, err)

	assert.Equal(t, 1, p.Position)
	assert.Equal(t, s.Rules.InitialCash+s.Rules.PassStartBonus, p.Cash)
}

func TestDoublesGrantReroll(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	// Doubles landing on income tax: no decision opens, the same player
	// rolls again.
	scriptRolls(s, [2]int{3, 3})

	_, err := s.RollDice("p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", s.CurrentPlayer().ID)
	assert.Equal(t, PhaseAwaitingRoll, s.Phase)
	assert.Equal(t, 1, s.DoublesStreak)
}

func TestEndTurnDeclinesPurchaseKeepsReroll(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	// Doubles landing on an unowned property: Deciding, reroll pending.
	scriptRolls(s, [2]int{1, 1})

	_, err := s.RollDice("p1")
	require.NoError(t, err)
	require.Equal(t, PhaseDeciding, s.Phase)

	// Declining the purchase does not forfeit the doubles reroll.
	_, err = s.EndTurn("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", s.CurrentPlayer().ID)
	assert.Equal(t, PhaseAwaitingRoll, s.Phase)
}

func TestThreeConsecutiveDoublesJail(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	p := s.playerByID("p1")
	scriptRolls(s, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})

	// First double: lands on an unowned property, decline the purchase.
	_, err := s.RollDice("p1")
	require.NoError(t, err)
	_, err = s.EndTurn("p1")
	require.NoError(t, err)

	// Second double: lands on income tax, straight back to AwaitingRoll.
	_, err = s.RollDice("p1")
	require.NoError(t, err)
	require.Equal(t, PhaseAwaitingRoll, s.Phase)
	require.Equal(t, 2, s.DoublesStreak)

	// Third double: no movement, straight to jail, turn over.
	posBefore := p.Position
	cashBefore := p.Cash
	_, err = s.RollDice("p1")
	require.NoError(t, err)

	assert.Equal(t, s.Board.JailIndex(), p.Position)
	assert.NotEqual(t, posBefore+6, p.Position, "third double must not move normally")
	assert.Equal(t, cashBefore, p.Cash, "jail entry pays nothing")
	assert.Equal(t, "p2", s.CurrentPlayer().ID)
	assert.Equal(t, 0, s.DoublesStreak)
}

func TestEndTurnRotation(t *testing.T) {
	s := newTestSession(t, "p1", "p2", "p3")
	scriptRolls(s, [2]int{2, 4}) // income tax, no decision

	_, err := s.RollDice("p1")
	require.NoError(t, err)
	require.Equal(t, PhaseTurnComplete, s.Phase)

	_, err = s.EndTurn("p1")
	require.NoError(t, err)
	assert.Equal(t, "p2", s.CurrentPlayer().ID)
	assert.Equal(t, PhaseAwaitingRoll, s.Phase)

	_, err = s.RollDice("p2")
	require.NoError(t, err)
	_, err = s.EndTurn("p2")
	require.NoError(t, err)
	assert.Equal(t, "p3", s.CurrentPlayer().ID)
}

func TestEndTurnRejectedInWrongPhase(t *testing.T) {
	s := newTestSession(t, "p1", "p2")

	_, err := s.EndTurn("p1")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = s.EndTurn("p2")
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestRotationSkipsBankrupt(t *testing.T) {
	s := newTestSession(t, "p1", "p2", "p3")
	s.playerByID("p2").Bankrupt = true
	scriptRolls(s, [2]int{2, 4})

	_, err := s.RollDice("p1")
	require.NoError(t, err)
	_, err = s.EndTurn("p1")
	require.NoError(t, err)

	assert.Equal(t, "p3", s.CurrentPlayer().ID)
}

func TestLobbyMutationsRejectedAfterStart(t *testing.T) {
	s := newTestSession(t, "p1", "p2")

	assert.ErrorIs(t, s.AddPlayer("p3", "Üçüncü"), ErrSessionNotActive)
	assert.ErrorIs(t, s.RemovePlayer("p2"), ErrSessionNotActive)
}
