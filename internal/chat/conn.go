package chat

import (
	"context"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// wsConn adapts a websocket connection to the Conn interface.
type wsConn struct {
	conn *websocket.Conn
}

// NewWebsocketConn wraps an accepted websocket connection.
func NewWebsocketConn(conn *websocket.Conn) Conn {
	return &wsConn{conn: conn}
}

func (w *wsConn) Read(ctx context.Context) (Event, error) {
	var ev Event
	err := wsjson.Read(ctx, w.conn, &ev)
	return ev, err
}

func (w *wsConn) Write(ctx context.Context, ev Event) error {
	return wsjson.Write(ctx, w.conn, ev)
}

func (w *wsConn) Ping(ctx context.Context) error {
	return w.conn.Ping(ctx)
}

func (w *wsConn) Close() {
	_ = w.conn.Close(websocket.StatusNormalClosure, "bye")
}
