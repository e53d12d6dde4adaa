package chat

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/Utkarsh4517/fast-chat/internal/metrics"
)

// ErrAlreadyRegistered means a connection was registered twice for the same
// room. That is a programming error in the caller, never expected at runtime.
var ErrAlreadyRegistered = errors.New("connection already registered")

// ErrNotRegistered means an unregister targeted a connection the registry
// does not hold. Non-fatal; callers log it and move on.
var ErrNotRegistered = errors.New("connection not registered")

// Registry maps room IDs to their live connections. It is owned state,
// constructed once and injected into every session — never a package global.
// The outer lock only guards the room map; each room has its own lock, so
// traffic in one room never contends with another.
type Registry struct {
	log *slog.Logger

	mu    sync.RWMutex
	rooms map[int]*roomEntry
}

type roomEntry struct {
	mu    sync.Mutex
	conns map[*Conn]struct{}
	// pruned marks an entry whose last connection left; it is on its way out
	// of the room map and must not accept new registrations.
	pruned bool
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:   log,
		rooms: make(map[int]*roomEntry),
	}
}

// Register adds conn to the room's connection set, creating the set on first
// join. Registering the same connection twice is rejected. The map write lock
// is only taken to insert or replace an entry; the membership mutation itself
// happens under the room's own lock, so joins in different rooms do not
// serialize against each other.
func (r *Registry) Register(roomID int, conn *Conn) error {
	for {
		r.mu.RLock()
		entry := r.rooms[roomID]
		r.mu.RUnlock()

		if entry == nil {
			r.mu.Lock()
			if entry = r.rooms[roomID]; entry == nil {
				entry = &roomEntry{conns: make(map[*Conn]struct{})}
				r.rooms[roomID] = entry
			}
			r.mu.Unlock()
		}

		entry.mu.Lock()
		if entry.pruned {
			// Lost a race with the last leaver: this entry is dead. Clear it
			// from the map if still there and start over with a fresh one.
			entry.mu.Unlock()
			r.mu.Lock()
			if r.rooms[roomID] == entry {
				delete(r.rooms, roomID)
			}
			r.mu.Unlock()
			continue
		}
		if _, ok := entry.conns[conn]; ok {
			entry.mu.Unlock()
			return ErrAlreadyRegistered
		}
		entry.conns[conn] = struct{}{}
		size := len(entry.conns)
		entry.mu.Unlock()

		metrics.ActiveConnections.Inc()
		r.log.Debug("registry.register", "room", roomID, "conn", conn.ID(), "size", size)
		return nil
	}
}

// Unregister removes conn from the room. When the last connection leaves, the
// room entry itself is removed: the registry never holds an empty set.
func (r *Registry) Unregister(roomID int, conn *Conn) error {
	r.mu.RLock()
	entry := r.rooms[roomID]
	r.mu.RUnlock()
	if entry == nil {
		return ErrNotRegistered
	}

	entry.mu.Lock()
	if _, ok := entry.conns[conn]; !ok {
		entry.mu.Unlock()
		return ErrNotRegistered
	}
	delete(entry.conns, conn)
	size := len(entry.conns)
	if size == 0 {
		entry.pruned = true
	}
	entry.mu.Unlock()

	if size == 0 {
		// Lock order is always map then entry, so the entry lock was released
		// before taking the map lock here.
		r.mu.Lock()
		if r.rooms[roomID] == entry {
			delete(r.rooms, roomID)
		}
		r.mu.Unlock()
	}

	metrics.ActiveConnections.Dec()
	r.log.Debug("registry.unregister", "room", roomID, "conn", conn.ID(), "size", size)
	return nil
}

// Snapshot returns a consistent copy of the room's current membership.
func (r *Registry) Snapshot(roomID int) []*Conn {
	r.mu.RLock()
	entry := r.rooms[roomID]
	r.mu.RUnlock()
	if entry == nil {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	conns := make([]*Conn, 0, len(entry.conns))
	for c := range entry.conns {
		conns = append(conns, c)
	}
	return conns
}

// Broadcast delivers payload to every connection in the room except exclude
// (the originator, to avoid echo). Sends happen outside any lock, against a
// point-in-time snapshot. A connection that cannot accept the payload is
// dropped and closed; its failure never interrupts delivery to the rest.
func (r *Registry) Broadcast(roomID int, payload string, exclude *Conn) int {
	delivered := 0
	var dead []*Conn

	for _, c := range r.Snapshot(roomID) {
		if c == exclude {
			continue
		}
		if c.Send(payload) {
			delivered++
			metrics.BroadcastDeliveries.Inc()
		} else {
			dead = append(dead, c)
		}
	}

	for _, c := range dead {
		metrics.BroadcastDrops.Inc()
		r.log.Warn("registry.drop_slow_conn", "room", roomID, "conn", c.ID())
		if err := r.Unregister(roomID, c); err != nil {
			r.log.Debug("registry.drop_unregister", "room", roomID, "conn", c.ID(), "err", err)
		}
		c.Close()
	}
	return delivered
}
