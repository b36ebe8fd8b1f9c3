package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Client wraps a websocket connection with a buffered outbound queue.
// All writes to the connection go through writePump; the reader only
// drains control frames to keep the connection alive.
type Client struct {
	conn *websocket.Conn
	send chan Event
	log  *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn, log *slog.Logger) *Client {
	return &Client{
		conn: conn,
		send: make(chan Event, sendBufferSize),
		log:  log,
		done: make(chan struct{}),
	}
}

// TrySend queues an event without blocking. Returns false when the
// client's buffer is full or the client is closed.
func (c *Client) TrySend(event Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Run services the connection until the peer disconnects or Close is
// called. Blocks; callers run it from the websocket handler goroutine.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
