package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proposedID(t *testing.T, events []Event) string {
	t.Helper()
	for _, e := range events {
		if e.Type == EventTradeProposed {
			proposal, ok := e.Payload.(*TradeProposal)
			require.True(t, ok)
			return proposal.ID
		}
	}
	t.Fatal("no tradeProposed event")
	return ""
}

func TestProposeDeliversToTargetOnly(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	grantTile(t, s, "p1", 1)

	events, err := s.ProposeTrade("p1", "p2", TradeLeg{TileIDs: []int{1}}, TradeLeg{Cash: 500000})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, EventTradeProposed, events[0].Type)
	assert.Equal(t, "p2", events[0].To, "proposal goes to the target player only")
}

func TestAcceptAppliesAllLegsAtomically(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	grantTile(t, s, "p1", 1)
	grantTile(t, s, "p2", 8)
	before := totalCash(s)

	events, err := s.ProposeTrade("p1", "p2",
		TradeLeg{Cash: 500000, TileIDs: []int{1}},
		TradeLeg{Cash: 200000, TileIDs: []int{8}})
	require.NoError(t, err)
	id := proposedID(t, events)

	events, err = s.RespondTrade(id, "p2", true)
	require.NoError(t, err)

	p1 := s.playerByID("p1")
	p2 := s.playerByID("p2")
	assert.Equal(t, 10000000-500000+200000, p1.Cash)
	assert.Equal(t, 10000000+500000-200000, p2.Cash)
	assert.Equal(t, before, totalCash(s))
	assert.Equal(t, "p2", s.Ownership[1])
	assert.Equal(t, "p1", s.Ownership[8])
	assert.True(t, p2.OwnedTiles[1])
	assert.True(t, p1.OwnedTiles[8])
	assert.False(t, p1.OwnedTiles[1])

	require.Len(t, events, 1)
	assert.Equal(t, EventTradeResolved, events[0].Type)
	payload := events[0].Payload.(TradeResolvedPayload)
	assert.True(t, payload.Accepted)

	_, pending := s.PendingTrade(id)
	assert.False(t, pending)
}

func TestRejectLeavesLedgerUntouched(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	grantTile(t, s, "p1", 1)

	events, err := s.ProposeTrade("p1", "p2", TradeLeg{TileIDs: []int{1}}, TradeLeg{Cash: 100})
	require.NoError(t, err)
	id := proposedID(t, events)

	events, err = s.RespondTrade(id, "p2", false)
	require.NoError(t, err)

	assert.Equal(t, "p1", s.Ownership[1])
	assert.Equal(t, 10000000, s.playerByID("p1").Cash)
	payload := events[0].Payload.(TradeResolvedPayload)
	assert.False(t, payload.Accepted)

	_, pending := s.PendingTrade(id)
	assert.False(t, pending)
}

func TestStaleProposalFailsRevalidation(t *testing.T) {
	s := newTestSession(t, "p1", "p2", "p3")
	grantTile(t, s, "p1", 1)

	events, err := s.ProposeTrade("p1", "p2", TradeLeg{TileIDs: []int{1}}, TradeLeg{Cash: 100000})
	require.NoError(t, err)
	id := proposedID(t, events)

	// Ownership changes between proposal and acceptance.
	s.Ownership[1] = "p3"
	s.playerByID("p1").OwnedTiles = map[int]bool{}
	s.playerByID("p3").OwnedTiles[1] = true

	events, err = s.RespondTrade(id, "p2", true)
	assert.ErrorIs(t, err, ErrTradeValidationFailed)

	// Nothing applied, both parties notified of the failure.
	assert.Equal(t, "p3", s.Ownership[1])
	assert.Equal(t, 10000000, s.playerByID("p1").Cash)
	assert.Equal(t, 10000000, s.playerByID("p2").Cash)
	require.Len(t, events, 1)
	payload := events[0].Payload.(TradeResolvedPayload)
	assert.False(t, payload.Accepted)
	assert.NotEmpty(t, payload.Reason)
}

func TestCashLegRevalidated(t *testing.T) {
	s := newTestSession(t, "p1", "p2")

	events, err := s.ProposeTrade("p1", "p2", TradeLeg{Cash: 5000000}, TradeLeg{})
	require.NoError(t, err)
	id := proposedID(t, events)

	s.playerByID("p1").Cash = 1000000

	_, err = s.RespondTrade(id, "p2", true)
	assert.ErrorIs(t, err, ErrTradeValidationFailed)
	assert.Equal(t, 1000000, s.playerByID("p1").Cash)
}

func TestNewerProposalSupersedesPair(t *testing.T) {
	s := newTestSession(t, "p1", "p2", "p3")

	events, err := s.ProposeTrade("p1", "p2", TradeLeg{Cash: 100000}, TradeLeg{})
	require.NoError(t, err)
	first := proposedID(t, events)

	events, err = s.ProposeTrade("p1", "p2", TradeLeg{Cash: 200000}, TradeLeg{})
	require.NoError(t, err)
	second := proposedID(t, events)

	_, pending := s.PendingTrade(first)
	assert.False(t, pending, "older proposal for the pair is gone")
	_, pending = s.PendingTrade(second)
	assert.True(t, pending)

	// A different pair keeps its own slot.
	events, err = s.ProposeTrade("p1", "p3", TradeLeg{Cash: 300000}, TradeLeg{})
	require.NoError(t, err)
	third := proposedID(t, events)

	_, pending = s.PendingTrade(second)
	assert.True(t, pending)
	_, pending = s.PendingTrade(third)
	assert.True(t, pending)

	// The superseded id can no longer be answered.
	_, err = s.RespondTrade(first, "p2", true)
	assert.ErrorIs(t, err, ErrUnknownSessionOrPlayer)
}

func TestTradeIndependentOfTurnOrder(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	grantTile(t, s, "p2", 8)
	require.Equal(t, "p1", s.CurrentPlayer().ID)

	// The non-active player proposes and the active player accepts.
	events, err := s.ProposeTrade("p2", "p1", TradeLeg{TileIDs: []int{8}}, TradeLeg{Cash: 400000})
	require.NoError(t, err)
	id := proposedID(t, events)

	_, err = s.RespondTrade(id, "p1", true)
	require.NoError(t, err)
	assert.Equal(t, "p1", s.Ownership[8])
}

func TestOnlyTargetMayRespond(t *testing.T) {
	s := newTestSession(t, "p1", "p2", "p3")

	events, err := s.ProposeTrade("p1", "p2", TradeLeg{Cash: 100000}, TradeLeg{})
	require.NoError(t, err)
	id := proposedID(t, events)

	_, err = s.RespondTrade(id, "p1", true)
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, err = s.RespondTrade(id, "p3", true)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, pending := s.PendingTrade(id)
	assert.True(t, pending, "misdirected responses leave the proposal open")
}

func TestProposeRejectsBadLegs(t *testing.T) {
	s := newTestSession(t, "p1", "p2")

	_, err := s.ProposeTrade("p1", "p2", TradeLeg{Cash: -1}, TradeLeg{})
	assert.ErrorIs(t, err, ErrTradeValidationFailed)

	_, err = s.ProposeTrade("p1", "p2", TradeLeg{TileIDs: []int{99}}, TradeLeg{})
	assert.ErrorIs(t, err, ErrTradeValidationFailed)

	_, err = s.ProposeTrade("p1", "p1", TradeLeg{}, TradeLeg{})
	assert.ErrorIs(t, err, ErrUnknownSessionOrPlayer)

	_, err = s.ProposeTrade("p1", "ghost", TradeLeg{}, TradeLeg{})
	assert.ErrorIs(t, err, ErrUnknownSessionOrPlayer)
}

func TestProposeRequiresLegOwnership(t *testing.T) {
	s := newTestSession(t, "p1", "p2", "p3")
	grantTile(t, s, "p2", 1)

	// Offering a tile someone else currently owns never becomes a pending
	// proposal, even if the proposer might acquire the tile before the
	// target responds.
	_, err := s.ProposeTrade("p1", "p3", TradeLeg{TileIDs: []int{1}}, TradeLeg{Cash: 100000})
	assert.ErrorIs(t, err, ErrTradeValidationFailed)

	// Same for requesting a tile the target does not own.
	_, err = s.ProposeTrade("p1", "p3", TradeLeg{Cash: 100000}, TradeLeg{TileIDs: []int{1}})
	assert.ErrorIs(t, err, ErrTradeValidationFailed)

	// And for a cash leg the proposer cannot cover.
	s.playerByID("p1").Cash = 50000
	_, err = s.ProposeTrade("p1", "p3", TradeLeg{Cash: 100000}, TradeLeg{})
	assert.ErrorIs(t, err, ErrTradeValidationFailed)

	assert.Empty(t, s.trades)
}

// A proposal for a tile in flight cannot leapfrog the ledger: once p2 hands
// tile 1 to p1 through an accepted trade, an earlier attempt by p1 to offer
// that same tile onward must already have been refused at proposal time.
func TestTileInFlightCannotBeOfferedOnward(t *testing.T) {
	s := newTestSession(t, "p1", "p2", "p3")
	grantTile(t, s, "p2", 1)

	_, err := s.ProposeTrade("p1", "p3", TradeLeg{TileIDs: []int{1}}, TradeLeg{Cash: 100000})
	require.ErrorIs(t, err, ErrTradeValidationFailed)

	// p1 acquires the tile from p2.
	events, err := s.ProposeTrade("p1", "p2", TradeLeg{Cash: 500000}, TradeLeg{TileIDs: []int{1}})
	require.NoError(t, err)
	_, err = s.RespondTrade(proposedID(t, events), "p2", true)
	require.NoError(t, err)
	require.Equal(t, "p1", s.Ownership[1])

	// The onward offer only exists if made after the acquisition.
	events, err = s.ProposeTrade("p1", "p3", TradeLeg{TileIDs: []int{1}}, TradeLeg{Cash: 100000})
	require.NoError(t, err)
	_, err = s.RespondTrade(proposedID(t, events), "p3", true)
	require.NoError(t, err)
	assert.Equal(t, "p3", s.Ownership[1])
}

func TestTradedTileClearsGroupConstruction(t *testing.T) {
	s := newTestSession(t, "p1", "p2")
	for _, id := range []int{1, 2, 4, 5} {
		grantTile(t, s, "p2", id)
	}
	s.Construction[1] = 3
	s.Construction[2] = 1

	events, err := s.ProposeTrade("p2", "p1", TradeLeg{TileIDs: []int{2}}, TradeLeg{Cash: 1000000})
	require.NoError(t, err)
	id := proposedID(t, events)

	_, err = s.RespondTrade(id, "p1", true)
	require.NoError(t, err)

	// The broken monopoly loses its construction across the whole group.
	assert.Empty(t, s.Construction)
	assert.Equal(t, "p1", s.Ownership[2])
	assert.Equal(t, "p2", s.Ownership[1])
}
