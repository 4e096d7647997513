package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/game/board"
	"github.com/emlakopoly/backend/internal/game/engine"
	"github.com/emlakopoly/backend/internal/game/models"
	"github.com/emlakopoly/backend/internal/game/utils"
)

// WebSocketHub defines how the controller reaches room observers.
type WebSocketHub interface {
	BroadcastToRoom(roomID string, message []byte)
	SendToPlayer(roomID, playerID string, message []byte)
}

// SettlementQueue defines how completed sessions are handed off for
// archiving. The controller never blocks play on the archive path.
type SettlementQueue interface {
	EnqueueSettlement(roomID string, record models.SessionRecord) error
}

// Options carries the game-rule knobs injected from config.
type Options struct {
	Rules      engine.Rules
	MaxPlayers int
	MinPlayers int
}

// SessionController owns the session registry. Every room has a single
// command loop goroutine: all inbound commands for that room are applied one
// at a time, in arrival order, and all randomness happens inside that loop.
// Commands for different rooms proceed in parallel.
type SessionController struct {
	ctx    context.Context
	logger *zap.SugaredLogger
	hub    WebSocketHub
	queue  SettlementQueue
	board  *board.Board
	opts   Options

	mu    sync.RWMutex
	rooms map[string]*room
}

// NewSessionController creates the controller with an empty registry.
func NewSessionController(ctx context.Context, logger *zap.SugaredLogger, opts Options) *SessionController {
	if opts.MaxPlayers == 0 {
		opts.MaxPlayers = 6
	}
	if opts.MinPlayers == 0 {
		opts.MinPlayers = 2
	}
	return &SessionController{
		ctx:    ctx,
		logger: logger,
		board:  board.Default(),
		opts:   opts,
		rooms:  make(map[string]*room),
	}
}

// SetWebSocketHub sets the hub used for outbound events.
func (sc *SessionController) SetWebSocketHub(hub WebSocketHub) {
	sc.hub = hub
}

// SetSettlementQueue sets the queue used to archive completed sessions.
func (sc *SessionController) SetSettlementQueue(queue SettlementQueue) {
	sc.queue = queue
}

// RoomSummary is a lobby-listing view of a room.
type RoomSummary struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	PlayerCount int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	HostName    string `json:"hostName,omitempty"`
}

// CreateRoom registers a new session with the creator seated as host.
func (sc *SessionController) CreateRoom(hostID, hostName, roomName string) (string, string, error) {
	code, err := utils.GenerateRoomCode()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate room code: %w", err)
	}
	roomID := uuid.New().String()
	if roomName == "" {
		roomName = "Oda " + code
	}

	session := engine.NewSession(roomID, code, roomName, hostID, sc.board, sc.opts.Rules, time.Now().UnixNano())
	if err := session.AddPlayer(hostID, hostName); err != nil {
		return "", "", err
	}

	r := newRoom(session)

	sc.mu.Lock()
	sc.rooms[roomID] = r
	sc.mu.Unlock()

	go sc.runRoom(r)

	sc.logger.Infow("Room created", "roomId", roomID, "code", code, "host", hostID)
	return roomID, code, nil
}

func (sc *SessionController) room(roomID string) (*room, error) {
	sc.mu.RLock()
	r, ok := sc.rooms[roomID]
	sc.mu.RUnlock()
	if !ok {
		return nil, engine.ErrUnknownSessionOrPlayer
	}
	return r, nil
}

// removeRoom drops a room from the registry.
func (sc *SessionController) removeRoom(roomID string) {
	sc.mu.Lock()
	_, ok := sc.rooms[roomID]
	if ok {
		delete(sc.rooms, roomID)
	}
	sc.mu.Unlock()
	if ok {
		sc.logger.Infow("Room removed", "roomId", roomID)
	}
}

// ListRooms returns summaries of all registered rooms.
func (sc *SessionController) ListRooms() []RoomSummary {
	sc.mu.RLock()
	rooms := make([]*room, 0, len(sc.rooms))
	ids := make([]string, 0, len(sc.rooms))
	for id, r := range sc.rooms {
		rooms = append(rooms, r)
		ids = append(ids, id)
	}
	sc.mu.RUnlock()

	out := make([]RoomSummary, 0, len(rooms))
	for i, r := range rooms {
		var summary RoomSummary
		// Read the summary inside the loop for a consistent view.
		err := sc.dispatch(r, func(s *engine.Session) ([]engine.Event, error) {
			hostName := ""
			if len(s.Players) > 0 {
				hostName = s.Players[0].Name
			}
			summary = RoomSummary{
				ID:          ids[i],
				Code:        s.Code,
				Name:        s.Name,
				Status:      string(s.Status),
				PlayerCount: len(s.Players),
				MaxPlayers:  sc.opts.MaxPlayers,
				HostName:    hostName,
			}
			return nil, nil
		})
		if err == nil {
			out = append(out, summary)
		}
	}
	return out
}

// Snapshot returns the current full state of a room.
func (sc *SessionController) Snapshot(roomID string) (engine.Snapshot, error) {
	r, err := sc.room(roomID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	var snap engine.Snapshot
	err = sc.dispatch(r, func(s *engine.Session) ([]engine.Event, error) {
		snap = s.Snapshot()
		return nil, nil
	})
	return snap, err
}

// JoinRoom seats a player in a lobby-state room.
func (sc *SessionController) JoinRoom(roomID, playerID, name string) error {
	r, err := sc.room(roomID)
	if err != nil {
		return err
	}
	return sc.dispatch(r, func(s *engine.Session) ([]engine.Event, error) {
		if len(s.Players) >= sc.opts.MaxPlayers {
			return nil, fmt.Errorf("room is full")
		}
		if err := s.AddPlayer(playerID, name); err != nil {
			return nil, err
		}
		return []engine.Event{{Type: engine.EventSessionState, Payload: s.Snapshot()}}, nil
	})
}

// LeaveRoom unseats a player before start. The room's loop removes itself
// from the registry when the last player leaves.
func (sc *SessionController) LeaveRoom(roomID, playerID string) error {
	r, err := sc.room(roomID)
	if err != nil {
		return err
	}
	return sc.dispatch(r, func(s *engine.Session) ([]engine.Event, error) {
		if err := s.RemovePlayer(playerID); err != nil {
			return nil, err
		}
		return []engine.Event{{Type: engine.EventSessionState, Payload: s.Snapshot()}}, nil
	})
}

// StartSession begins play; host only, minimum player count enforced.
func (sc *SessionController) StartSession(roomID, playerID string) error {
	r, err := sc.room(roomID)
	if err != nil {
		return err
	}
	return sc.dispatch(r, func(s *engine.Session) ([]engine.Event, error) {
		if len(s.Players) < sc.opts.MinPlayers {
			return nil, fmt.Errorf("at least %d players required", sc.opts.MinPlayers)
		}
		return s.Start(playerID)
	})
}

// RollDice rolls for the current player.
func (sc *SessionController) RollDice(roomID, playerID string) error {
	return sc.command(roomID, func(s *engine.Session) ([]engine.Event, error) {
		return s.RollDice(playerID)
	})
}

// BuyTile purchases the tile the current player stands on.
func (sc *SessionController) BuyTile(roomID, playerID string) error {
	return sc.command(roomID, func(s *engine.Session) ([]engine.Event, error) {
		return s.BuyTile(playerID)
	})
}

// Build adds one construction level on the given tile.
func (sc *SessionController) Build(roomID, playerID string, tileID int) error {
	return sc.command(roomID, func(s *engine.Session) ([]engine.Event, error) {
		return s.Build(playerID, tileID)
	})
}

// EndTurn ends the current player's turn.
func (sc *SessionController) EndTurn(roomID, playerID string) error {
	return sc.command(roomID, func(s *engine.Session) ([]engine.Event, error) {
		return s.EndTurn(playerID)
	})
}

// ProposeTrade files a trade proposal; delivered only to the target player.
func (sc *SessionController) ProposeTrade(roomID, from, to string, offer, request engine.TradeLeg) error {
	return sc.command(roomID, func(s *engine.Session) ([]engine.Event, error) {
		return s.ProposeTrade(from, to, offer, request)
	})
}

// RespondTrade resolves a pending trade proposal.
func (sc *SessionController) RespondTrade(roomID, proposalID, responderID string, accept bool) error {
	return sc.command(roomID, func(s *engine.Session) ([]engine.Event, error) {
		return s.RespondTrade(proposalID, responderID, accept)
	})
}

func (sc *SessionController) command(roomID string, run func(*engine.Session) ([]engine.Event, error)) error {
	r, err := sc.room(roomID)
	if err != nil {
		return err
	}
	return sc.dispatch(r, run)
}
