package chat

import (
	"context"
	"time"
)

// Conn is the opaque connection handle the hub routes events through.
// Production code wraps a websocket; tests use fakes.
type Conn interface {
	Read(ctx context.Context) (Event, error)
	Write(ctx context.Context, ev Event) error
	Ping(ctx context.Context) error
	Close()
}

type client struct {
	id     string
	userID uint
	conn   Conn
	send   chan Event

	ctx    context.Context
	cancel context.CancelFunc
}

// enqueue hands an event to the write loop without blocking. A full buffer
// drops the event; the hub records the drop.
func (c *client) enqueue(ev Event) bool {
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

func (c *client) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.send:
			writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			_ = c.conn.Write(writeCtx, ev)
			cancel()
		}
	}
}

func (c *client) keepAliveLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = c.conn.Ping(pingCtx)
			cancel()
		}
	}
}
