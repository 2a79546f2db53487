package realtime

// Package realtime holds the live WebSocket delivery path: per-connection
// clients, the connection registry, the notification dispatcher, and the
// admission handler.

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// sendBufferSize bounds the per-client outgoing queue. A full buffer
	// drops frames rather than blocking the sender.
	sendBufferSize = 32

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one live WebSocket connection for a principal. All outgoing
// traffic goes through the buffered send channel; the write pump is the only
// goroutine that touches the underlying connection for writes.
type Client struct {
	principalID string
	conn        *websocket.Conn

	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewClient wraps an upgraded connection. conn may be nil in unit tests that
// only exercise the queueing behavior.
func NewClient(principalID string, conn *websocket.Conn) *Client {
	return &Client{
		principalID: principalID,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
	}
}

// PrincipalID returns the owning principal's id.
func (c *Client) PrincipalID() string { return c.principalID }

// TrySend queues a frame without blocking. It reports false when the client
// is closed or its buffer is full; the frame is dropped in either case.
func (c *Client) TrySend(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// Close tears the connection down. Safe to call multiple times and from any
// goroutine; the write pump exits on the done signal.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings. It exits when the client closes or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// readPump consumes (and discards) inbound frames so control messages are
// processed, and returns when the peer goes away. Clients only receive;
// nothing they send is interpreted.
func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
