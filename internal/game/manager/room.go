package manager

import (
	"encoding/json"

	"github.com/emlakopoly/backend/internal/game/engine"
	"github.com/emlakopoly/backend/internal/game/models"
)

// roomCommand is one unit of work for a room's command loop. The reply
// channel carries the validation outcome back to the originating actor only.
type roomCommand struct {
	run   func(*engine.Session) ([]engine.Event, error)
	reply chan error
}

// room pairs a session with its serialization point. done is closed when the
// command loop retires, so stale references fail fast.
type room struct {
	session  *engine.Session
	commands chan roomCommand
	done     chan struct{}
}

func newRoom(session *engine.Session) *room {
	return &room{
		session:  session,
		commands: make(chan roomCommand, 32),
		done:     make(chan struct{}),
	}
}

// dispatch queues a command on the room's loop and waits for the outcome. A
// caller holding a reference to a retired room gets a rejection, never a
// command buffered with no receiver.
func (sc *SessionController) dispatch(r *room, run func(*engine.Session) ([]engine.Event, error)) error {
	cmd := roomCommand{run: run, reply: make(chan error, 1)}
	select {
	case r.commands <- cmd:
	case <-r.done:
		return engine.ErrUnknownSessionOrPlayer
	case <-sc.ctx.Done():
		return sc.ctx.Err()
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-r.done:
		// The loop replies before retiring, so a buffered reply means the
		// command did run; a missing one means it was never taken.
		select {
		case err := <-cmd.reply:
			return err
		default:
			return engine.ErrUnknownSessionOrPlayer
		}
	case <-sc.ctx.Done():
		return sc.ctx.Err()
	}
}

// runRoom is the per-room command loop: the single writer for the room's
// ledger. Events produced by a successful command are published before the
// next command is taken, so observers see mutations in application order.
func (sc *SessionController) runRoom(r *room) {
	for {
		select {
		case <-sc.ctx.Done():
			return
		case cmd := <-r.commands:
			events, err := cmd.run(r.session)
			// A failed trade validation still emits a notification to both
			// parties, so publish whatever the command produced.
			if len(events) > 0 {
				sc.publish(r.session, events)
			}
			cmd.reply <- err
			if r.session.Status == engine.StatusCompleted {
				sc.settle(r.session)
				sc.retire(r)
				return
			}
			if len(r.session.Players) == 0 {
				sc.retire(r)
				return
			}
		}
	}
}

// retire removes the room from the registry and signals dispatchers that the
// loop no longer receives. Commands still buffered at this point were never
// applied; their dispatchers see the closed done channel and report a
// rejection.
func (sc *SessionController) retire(r *room) {
	sc.removeRoom(r.session.ID)
	close(r.done)
}

// eventEnvelope is the wire form of an outbound event.
type eventEnvelope struct {
	Type      engine.EventType `json:"type"`
	SessionID string           `json:"sessionId"`
	Payload   interface{}      `json:"payload,omitempty"`
}

// publish fans events out to room observers. Events addressed to a single
// player (trade proposals) go only to that player; a full state snapshot
// follows every batch so observers never reconstruct effects themselves.
func (sc *SessionController) publish(s *engine.Session, events []engine.Event) {
	if sc.hub == nil {
		return
	}
	events = append(events, engine.Event{Type: engine.EventSessionState, Payload: s.Snapshot()})
	for _, e := range events {
		data, err := json.Marshal(eventEnvelope{Type: e.Type, SessionID: s.ID, Payload: e.Payload})
		if err != nil {
			sc.logger.Errorw("Failed to marshal event", "type", e.Type, "error", err)
			continue
		}
		if e.To != "" {
			sc.hub.SendToPlayer(s.ID, e.To, data)
			continue
		}
		sc.hub.BroadcastToRoom(s.ID, data)
	}
}

// settle hands the finished session to the archive queue.
func (sc *SessionController) settle(s *engine.Session) {
	if sc.queue == nil {
		return
	}
	record := models.RecordFrom(s)
	if err := sc.queue.EnqueueSettlement(s.ID, record); err != nil {
		sc.logger.Errorw("Failed to enqueue settlement", "roomId", s.ID, "error", err)
		return
	}
	sc.logger.Infow("Settlement enqueued", "roomId", s.ID, "winner", s.WinnerID)
}
