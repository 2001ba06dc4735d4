package chat

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/models"
)

// MessageStore is the persistence boundary the hub writes through.
type MessageStore interface {
	Create(ctx context.Context, m *models.Message) error
	// MarkSeen flips seen on every unseen message for the receiver in the
	// request thread and returns the distinct sender ids of the rows that
	// changed.
	MarkSeen(ctx context.Context, receiverID, requestID uint) ([]uint, error)
}

// DropFunc observes silently dropped events so tests and metrics can see
// them. reason is a short stable string.
type DropFunc func(reason string, ev Event)

// Hub is the presence and messaging coordinator. It owns the registry of
// live connections keyed by user id; a user's latest connection wins and
// silently supersedes any earlier one.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]*client
	conns   map[*client]struct{}

	store  MessageStore
	log    *logger.Logger
	onDrop DropFunc
}

func NewHub(store MessageStore, log *logger.Logger) *Hub {
	return &Hub{
		clients: map[uint]*client{},
		conns:   map[*client]struct{}{},
		store:   store,
		log:     log,
	}
}

// SetDropHook installs the drop observer. Must be called before Serve.
func (h *Hub) SetDropHook(fn DropFunc) {
	h.onDrop = fn
}

func (h *Hub) drop(reason string, ev Event) {
	h.log.Debug("event dropped", "reason", reason, "type", ev.Type)
	if h.onDrop != nil {
		h.onDrop(reason, ev)
	}
}

// Serve drives one connection until it closes. userID is the identity bound
// at upgrade time from the verified token; events declaring any other
// identity are dropped rather than trusted.
func (h *Hub) Serve(ctx context.Context, userID uint, conn Conn) {
	ctx, cancel := context.WithCancel(ctx)
	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan Event, 64),
		ctx:    ctx,
		cancel: cancel,
	}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	go c.keepAliveLoop()
	defer h.disconnect(c)

	for {
		ev, err := conn.Read(ctx)
		if err != nil {
			return
		}
		h.dispatch(c, ev)
	}
}

func (h *Hub) dispatch(c *client, ev Event) {
	switch ev.Type {
	case EventJoin:
		var p JoinPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			h.drop("malformed payload", ev)
			return
		}
		if p.UserID != c.userID {
			h.drop("identity mismatch", ev)
			return
		}
		h.register(c)

	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			h.drop("malformed payload", ev)
			return
		}
		if p.Sender != c.userID {
			h.drop("identity mismatch", ev)
			return
		}
		h.sendMessage(c, p, ev)

	case EventTyping, EventStopTyping:
		var p TypingPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			h.drop("malformed payload", ev)
			return
		}
		if p.Sender != c.userID {
			h.drop("identity mismatch", ev)
			return
		}
		h.relayTyping(ev.Type, p, ev)

	case EventMarkSeen:
		var p MarkSeenPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			h.drop("malformed payload", ev)
			return
		}
		if p.UserID != c.userID {
			h.drop("identity mismatch", ev)
			return
		}
		h.markSeen(c, p, ev)

	default:
		h.drop("unknown event", ev)
	}
}

// register binds the user id to this connection. A second join for the same
// identity displaces the earlier handle without error.
func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c.userID] = c
	h.mu.Unlock()

	h.broadcastPresence()
}

// disconnect removes the connection's registry entry, if it still owns one,
// and rebroadcasts presence. A superseded connection no longer owns its
// entry and must not evict its replacement.
func (h *Hub) disconnect(c *client) {
	c.cancel()

	h.mu.Lock()
	delete(h.conns, c)
	if cur, ok := h.clients[c.userID]; ok && cur == c {
		delete(h.clients, c.userID)
	}
	h.mu.Unlock()

	c.conn.Close()
	h.broadcastPresence()
}

// broadcastPresence sends the registered identity set to every live
// connection, joined or not.
func (h *Hub) broadcastPresence() {
	ids := h.OnlineUsers()

	h.mu.RLock()
	targets := make([]*client, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	ev := newEvent(EventOnlineUsers, ids)
	for _, c := range targets {
		if !c.enqueue(ev) {
			h.drop("send buffer full", ev)
		}
	}
}

func (h *Hub) sendMessage(c *client, p SendMessagePayload, ev Event) {
	h.mu.RLock()
	receiver, receiverOnline := h.clients[p.Receiver]
	h.mu.RUnlock()

	// The type tag is only meaningful alongside a file, and only values
	// from the known set are persisted.
	fileType := ""
	if p.FileURL != "" {
		fileType = models.NormalizeFileType(p.FileType)
	}

	msg := &models.Message{
		SenderID:   p.Sender,
		ReceiverID: p.Receiver,
		RequestID:  p.RequestID,
		Text:       p.Text,
		FileURL:    p.FileURL,
		FileType:   fileType,
		Delivered:  receiverOnline,
		Seen:       false,
	}
	if err := h.store.Create(c.ctx, msg); err != nil {
		h.log.Error("failed to persist message", "error", err, "sender", p.Sender)
		h.drop("store failure", ev)
		return
	}

	out := newEvent(EventReceiveMessage, msg)

	// Echo to the sending connection regardless of receiver presence, so
	// the client can confirm its optimistic UI.
	if !c.enqueue(out) {
		h.drop("send buffer full", out)
	}

	if receiverOnline && receiver != c {
		if !receiver.enqueue(out) {
			h.drop("send buffer full", out)
		}
	}
}

func (h *Hub) relayTyping(typ string, p TypingPayload, ev Event) {
	h.mu.RLock()
	receiver, ok := h.clients[p.Receiver]
	h.mu.RUnlock()

	if !ok {
		h.drop("receiver offline", ev)
		return
	}
	if !receiver.enqueue(newEvent(typ, TypingNotice{From: p.Sender})) {
		h.drop("send buffer full", ev)
	}
}

func (h *Hub) markSeen(c *client, p MarkSeenPayload, ev Event) {
	h.mu.RLock()
	cur := h.clients[p.UserID]
	h.mu.RUnlock()

	// The issuing connection must currently be registered as this user.
	if cur != c {
		h.drop("not registered", ev)
		return
	}

	senders, err := h.store.MarkSeen(c.ctx, p.UserID, p.RequestID)
	if err != nil {
		h.log.Error("failed to mark messages seen", "error", err, "user", p.UserID)
		h.drop("store failure", ev)
		return
	}

	// Notify the conversation's participants only: the marker and the
	// registered senders of the messages that changed.
	notice := newEvent(EventSeenUpdate, SeenNotice{RequestID: p.RequestID})
	if !c.enqueue(notice) {
		h.drop("send buffer full", notice)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sid := range senders {
		if sid == p.UserID {
			continue
		}
		if peer, ok := h.clients[sid]; ok {
			if !peer.enqueue(notice) {
				h.drop("send buffer full", notice)
			}
		}
	}
}

// Online reports whether a user currently has a registered connection.
func (h *Hub) Online(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// OnlineUsers returns the current presence set, sorted.
func (h *Hub) OnlineUsers() []uint {
	h.mu.RLock()
	ids := make([]uint, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
