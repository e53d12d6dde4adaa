package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/Utkarsh4517/fast-chat/internal/metrics"
	"github.com/Utkarsh4517/fast-chat/internal/models"
	"github.com/Utkarsh4517/fast-chat/internal/store"
)

// State is the lifecycle of one room session. Transitions only ever move
// forward; Closed is terminal.
type State int32

const (
	StateConnecting State = iota
	StateReplaying
	StateActive
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReplaying:
		return "replaying"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session drives one connection through its room lifecycle: replay stored
// history in order, register, then loop on inbound lines until the client
// disconnects. Each accepted line is persisted before it is fanned out, so a
// receiver never sees a message that is not yet durable.
type Session struct {
	log      *slog.Logger
	store    store.Store
	gate     CredentialGate
	registry *Registry

	roomID int
	conn   *Conn
	state  atomic.Int32
}

func NewSession(log *slog.Logger, st store.Store, gate CredentialGate, reg *Registry, roomID int, conn *Conn) *Session {
	s := &Session{
		log:      log.With("room", roomID, "conn", conn.ID()),
		store:    st,
		gate:     gate,
		registry: reg,
		roomID:   roomID,
		conn:     conn,
	}
	s.state.Store(int32(StateConnecting))
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) transition(to State) {
	from := State(s.state.Swap(int32(to)))
	s.log.Debug("session.transition", "from", from.String(), "to", to.String())
}

// Run executes the session until the connection closes. It blocks; call it
// from the goroutine that owns the connection. Cancelling ctx closes the
// connection, which unblocks the read loop.
func (s *Session) Run(ctx context.Context) {
	go s.conn.WritePump()

	stop := context.AfterFunc(ctx, s.conn.Close)
	defer stop()

	if s.replay(ctx) {
		s.active(ctx)
	}
	s.close()
}

// replay sends the room's full stored history, oldest first, then registers
// the connection. It reports false when the session should close instead of
// going active.
func (s *Session) replay(ctx context.Context) bool {
	s.transition(StateReplaying)

	history, err := s.store.RoomMessages(ctx, s.roomID)
	if err != nil {
		s.log.Error("session.history", "err", err)
		return false
	}
	for _, line := range lo.Map(history, func(m models.Message, _ int) string {
		return MessageLine(m)
	}) {
		// Blocking send: history may be longer than the outbound buffer, and
		// the write pump is already draining it. False means the connection
		// closed mid-replay.
		if !s.conn.SendBlocking(line) {
			return false
		}
	}

	if err := s.registry.Register(s.roomID, s.conn); err != nil {
		s.log.Error("session.register", "err", err)
		return false
	}
	s.transition(StateActive)
	return true
}

// active is the receive loop. Per-line failures (malformed input, unknown
// sender, a store hiccup) are reported to the originating client only and the
// session stays active; only a connection-level read error ends the loop.
func (s *Session) active(ctx context.Context) {
	for {
		line, err := s.conn.ReadLine()
		if err != nil {
			// Recognized disconnect, not error unwinding: the read failing is
			// the signal that moves the machine to closing.
			return
		}
		s.handleLine(ctx, line)
	}
}

func (s *Session) handleLine(ctx context.Context, line string) {
	sender, content, err := ParseLine(line)
	if err != nil {
		s.log.Debug("session.malformed_line", "err", err)
		s.conn.Send("error: expected \"<sender>: <content>\"")
		return
	}

	known, err := s.gate.IsKnown(ctx, sender)
	if err != nil {
		s.log.Error("session.gate", "sender", sender, "err", err)
		s.conn.Send("error: could not verify sender")
		return
	}
	if !known {
		s.log.Debug("session.unknown_sender", "sender", sender)
		s.conn.Send("error: unknown sender " + sender)
		return
	}

	account, err := s.store.GetUserByUsername(ctx, sender)
	if err != nil {
		s.log.Error("session.resolve_sender", "sender", sender, "err", err)
		s.conn.Send("error: could not verify sender")
		return
	}

	// Persist first, fan out second. A store failure is fatal to this one
	// message only; the connection stays active.
	msg, err := s.store.AppendMessage(ctx, s.roomID, account.ID, content)
	if err != nil {
		s.log.Error("session.append", "err", err)
		s.conn.Send("error: message not saved, try again")
		return
	}
	metrics.MessagesPersisted.Inc()

	delivered := s.registry.Broadcast(s.roomID, FormatLine(sender, content), s.conn)
	s.log.Debug("session.broadcast", "seq", msg.Seq, "delivered", delivered)
}

func (s *Session) close() {
	s.transition(StateClosing)
	if err := s.registry.Unregister(s.roomID, s.conn); err != nil {
		// Expected when the session never went active or the broadcast path
		// already evicted the connection.
		if errors.Is(err, ErrNotRegistered) {
			s.log.Debug("session.unregister", "err", err)
		} else {
			s.log.Error("session.unregister", "err", err)
		}
	}
	s.conn.Close()
	s.transition(StateClosed)
}
