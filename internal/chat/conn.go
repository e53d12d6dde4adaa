package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Outbound buffer size per connection. A peer that falls this far behind
	// is treated as dead rather than allowed to stall the room.
	sendBufferSize = 256
)

// Conn wraps one client's websocket connection with a buffered outbound
// channel so that broadcasting never blocks on a slow peer. All writes go
// through the write pump; Send only enqueues.
type Conn struct {
	id   string
	ws   *websocket.Conn
	send chan string

	closeOnce sync.Once
	done      chan struct{}
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan string, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ID identifies the connection in logs and registry diagnostics.
func (c *Conn) ID() string { return c.id }

// Send enqueues a line for delivery. It reports false when the connection is
// closed or its buffer is full; the caller decides whether that is fatal for
// this connection (it never is for the rest of the room).
func (c *Conn) Send(line string) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- line:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// SendBlocking enqueues a line, waiting for buffer space if the peer is
// slow. It reports false only when the connection is closed. Use this for
// history replay, where this session is the sole writer and a history longer
// than the buffer must still arrive in full; broadcast uses Send so one slow
// peer cannot stall a room.
func (c *Conn) SendBlocking(line string) bool {
	select {
	case c.send <- line:
		return true
	case <-c.done:
		return false
	}
}

// ReadLine blocks until the next text frame arrives and returns it as a
// string. Any read error, including a normal close, means the connection is
// finished.
func (c *Conn) ReadLine() (string, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with periodic pings. It owns all writes to the underlying websocket.
// Run it in its own goroutine; it exits when the connection is closed.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case line := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close shuts the connection down exactly once. Safe to call from any
// goroutine; a pending ReadLine unblocks with an error.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.ws != nil {
			c.ws.Close()
		}
	})
}

// Done is closed when the connection has been shut down.
func (c *Conn) Done() <-chan struct{} { return c.done }
