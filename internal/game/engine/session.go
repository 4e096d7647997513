package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/emlakopoly/backend/internal/game/board"
)

// TurnPhase is the state of the active player's turn.
type TurnPhase string

const (
	PhaseAwaitingRoll TurnPhase = "AWAITING_ROLL"
	PhaseMoving       TurnPhase = "MOVING"
	PhaseResolving    TurnPhase = "RESOLVING"
	PhaseDeciding     TurnPhase = "DECIDING"
	PhaseTurnComplete TurnPhase = "TURN_COMPLETE"
)

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusLobby     SessionStatus = "LOBBY"
	StatusActive    SessionStatus = "ACTIVE"
	StatusCompleted SessionStatus = "COMPLETED"
)

// Player is one participant's ledger entry.
type Player struct {
	ID         string       `json:"playerId"`
	Name       string       `json:"name"`
	Cash       int          `json:"cash"`
	Position   int          `json:"position"`
	OwnedTiles map[int]bool `json:"-"`
	Bankrupt   bool         `json:"bankrupt"`
}

// TransactionType classifies a ledger movement for the archive.
type TransactionType string

const (
	TxPurchase     TransactionType = "PURCHASE"
	TxConstruction TransactionType = "CONSTRUCTION"
	TxRent         TransactionType = "RENT"
	TxTax          TransactionType = "TAX"
	TxCard         TransactionType = "CARD"
	TxTrade        TransactionType = "TRADE"
	TxSalary       TransactionType = "SALARY"
	TxForfeit      TransactionType = "FORFEIT"
)

// Transaction is one recorded ledger movement. An empty From or To denotes
// the bank.
type Transaction struct {
	Type      TransactionType `bson:"type" json:"type"`
	From      string          `bson:"fromPlayerId,omitempty" json:"fromPlayerId,omitempty"`
	To        string          `bson:"toPlayerId,omitempty" json:"toPlayerId,omitempty"`
	Amount    int             `bson:"amount" json:"amount"`
	TileID    int             `bson:"tileId,omitempty" json:"tileId,omitempty"`
	Timestamp time.Time       `bson:"timestamp" json:"timestamp"`
}

// Rules holds the configurable game constants.
type Rules struct {
	InitialCash    int
	PassStartBonus int
	MaxBuildLevel  int
}

// DefaultRules mirrors the standard configuration.
func DefaultRules() Rules {
	return Rules{
		InitialCash:    10000000,
		PassStartBonus: 200000,
		MaxBuildLevel:  5,
	}
}

// Session is the authoritative state of one running game. It is not safe
// for concurrent use: the session controller serializes all commands for a
// room through a single goroutine before they reach these methods.
type Session struct {
	ID     string
	Code   string
	Name   string
	HostID string
	Status SessionStatus

	Board         *board.Board
	Chance        *board.Deck
	CommunityFund *board.Deck
	Rules         Rules

	Players       []*Player
	CurrentTurn   int
	Phase         TurnPhase
	DoublesStreak int
	rerollPending bool

	Ownership    map[int]string
	Construction map[int]int

	trades     map[string]*TradeProposal
	pairOffers map[string]string // "from|to" -> outstanding proposal id

	WinnerID     string
	Transactions []Transaction

	rng    *rand.Rand
	roller func() (int, int)

	events []Event
}

// NewSession creates a session in lobby state. The seed feeds the session's
// private RNG; dice and card draws never leave this process.
func NewSession(id, code, name, hostID string, b *board.Board, rules Rules, seed int64) *Session {
	s := &Session{
		ID:            id,
		Code:          code,
		Name:          name,
		HostID:        hostID,
		Status:        StatusLobby,
		Board:         b,
		Chance:        board.ChanceDeck(),
		CommunityFund: board.CommunityFundDeck(),
		Rules:         rules,
		Ownership:     make(map[int]string),
		Construction:  make(map[int]int),
		trades:        make(map[string]*TradeProposal),
		pairOffers:    make(map[string]string),
		rng:           rand.New(rand.NewSource(seed)),
	}
	s.roller = func() (int, int) {
		return s.rng.Intn(6) + 1, s.rng.Intn(6) + 1
	}
	return s
}

// AddPlayer seats a participant before the game starts.
func (s *Session) AddPlayer(id, name string) error {
	if s.Status != StatusLobby {
		return ErrSessionNotActive
	}
	if s.playerByID(id) != nil {
		return fmt.Errorf("player %s already seated", id)
	}
	s.Players = append(s.Players, &Player{
		ID:         id,
		Name:       name,
		Cash:       s.Rules.InitialCash,
		OwnedTiles: make(map[int]bool),
	})
	return nil
}

// RemovePlayer unseats a participant; only allowed before the game starts.
func (s *Session) RemovePlayer(id string) error {
	if s.Status != StatusLobby {
		return ErrSessionNotActive
	}
	for i, p := range s.Players {
		if p.ID == id {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return nil
		}
	}
	return ErrUnknownSessionOrPlayer
}

// Start transitions the session from lobby to active play. Turn order is
// seating order; the first seat rolls first.
func (s *Session) Start(requesterID string) ([]Event, error) {
	s.events = nil
	if s.Status != StatusLobby {
		return nil, ErrSessionNotActive
	}
	if requesterID != s.HostID {
		return nil, ErrNotYourTurn
	}
	if len(s.Players) < 2 {
		return nil, fmt.Errorf("at least 2 players required to start")
	}
	s.Status = StatusActive
	s.CurrentTurn = 0
	s.Phase = PhaseAwaitingRoll
	s.emit(Event{Type: EventSessionStarted, Payload: s.Snapshot()})
	return s.drain(), nil
}

func (s *Session) playerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is.
func (s *Session) CurrentPlayer() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return s.Players[s.CurrentTurn]
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) drain() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *Session) record(tx Transaction) {
	tx.Timestamp = time.Now()
	s.Transactions = append(s.Transactions, tx)
}

// creditFromBank is a bank-funded credit (pass-start bonus, card payouts).
func (s *Session) creditFromBank(p *Player, amount int, txType TransactionType, tileID int) {
	p.Cash += amount
	s.record(Transaction{Type: txType, To: p.ID, Amount: amount, TileID: tileID})
}

// debitToBank debits the player in favour of the bank, declaring bankruptcy
// if the balance cannot cover the amount.
func (s *Session) debitToBank(p *Player, amount int, txType TransactionType, tileID int) {
	if p.Cash < amount {
		paid := p.Cash
		p.Cash = 0
		s.record(Transaction{Type: txType, From: p.ID, Amount: paid, TileID: tileID})
		s.declareBankrupt(p)
		return
	}
	p.Cash -= amount
	s.record(Transaction{Type: txType, From: p.ID, Amount: amount, TileID: tileID})
}

// transfer moves cash between two players, declaring the payer bankrupt when
// the balance cannot cover the amount. The creditor receives whatever the
// payer can still pay.
func (s *Session) transfer(from, to *Player, amount int, txType TransactionType, tileID int) {
	if from.Cash < amount {
		paid := from.Cash
		from.Cash = 0
		to.Cash += paid
		s.record(Transaction{Type: txType, From: from.ID, To: to.ID, Amount: paid, TileID: tileID})
		s.declareBankrupt(from)
		return
	}
	from.Cash -= amount
	to.Cash += amount
	s.record(Transaction{Type: txType, From: from.ID, To: to.ID, Amount: amount, TileID: tileID})
}

// declareBankrupt removes the player from play: all owned tiles return to
// the bank, construction on them is cleared, and the player is skipped in
// every later rotation. Forfeited tiles go to the bank rather than the
// creditor.
func (s *Session) declareBankrupt(p *Player) {
	if p.Bankrupt {
		return
	}
	p.Bankrupt = true
	for tileID := range p.OwnedTiles {
		delete(s.Ownership, tileID)
		delete(s.Construction, tileID)
		s.record(Transaction{Type: TxForfeit, From: p.ID, TileID: tileID})
	}
	p.OwnedTiles = make(map[int]bool)
	s.emit(Event{Type: EventPlayerBankrupt, Payload: PlayerBankruptPayload{PlayerID: p.ID}})
	s.checkWin()
}

// checkWin terminates the session when a single solvent player remains.
func (s *Session) checkWin() {
	if s.Status != StatusActive {
		return
	}
	var last *Player
	alive := 0
	for _, p := range s.Players {
		if !p.Bankrupt {
			alive++
			last = p
		}
	}
	if alive == 1 {
		s.WinnerID = last.ID
		s.Status = StatusCompleted
		s.Phase = PhaseTurnComplete
		s.emit(Event{Type: EventSessionEnded, Payload: SessionEndedPayload{WinnerID: last.ID}})
	}
}

// ownsFullGroup reports whether the player owns every tile in the group.
func (s *Session) ownsFullGroup(playerID, group string) bool {
	tiles := s.Board.GroupTiles(group)
	if len(tiles) == 0 {
		return false
	}
	for _, id := range tiles {
		if s.Ownership[id] != playerID {
			return false
		}
	}
	return true
}

// clearGroupConstruction zeroes construction on every tile of a group. Used
// when group ownership breaks, keeping the invariant that buildings only
// stand on fully owned groups.
func (s *Session) clearGroupConstruction(group string) {
	for _, id := range s.Board.GroupTiles(group) {
		delete(s.Construction, id)
	}
}

// propertyFaceValue sums the purchase price of everything the player owns;
// the basis for percentage taxes.
func (s *Session) propertyFaceValue(p *Player) int {
	total := 0
	for tileID := range p.OwnedTiles {
		if t, ok := s.Board.Tile(tileID); ok {
			total += t.Price
		}
	}
	return total
}
