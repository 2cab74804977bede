package ws

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const defaultWriteTimeout = 10 * time.Second

// Conn adapts a gorilla websocket connection to Channel. gorilla allows a
// single concurrent writer, so every write goes through writeMu.
type Conn struct {
	conn         *websocket.Conn
	writeMu      sync.Mutex
	closed       atomic.Bool
	writeTimeout time.Duration
}

func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{conn: conn, writeTimeout: defaultWriteTimeout}
}

// Send writes payload as a single text frame.
func (c *Conn) Send(payload []byte) error {
	return c.write(websocket.TextMessage, payload)
}

// Ping writes a ping control frame.
func (c *Conn) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

func (c *Conn) write(messageType int, payload []byte) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := c.conn.WriteMessage(messageType, payload); err != nil {
		// A failed write leaves the connection unusable
		c.closed.Store(true)
		return err
	}
	return nil
}

func (c *Conn) IsOpen() bool {
	return !c.closed.Load()
}

// Close sends a normal-closure frame and closes the socket. Later calls
// are no-ops.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.conn.Close()
}

// ReadMessage reads the next data frame.
func (c *Conn) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}
