package chat

import "encoding/json"

// Inbound event types. Disconnect is implicit in the connection closing.
const (
	EventJoin        = "join"
	EventSendMessage = "sendMessage"
	EventTyping      = "typing"
	EventStopTyping  = "stopTyping"
	EventMarkSeen    = "markSeen"
)

// Outbound event types. Typing and stopTyping are relayed under their
// inbound names.
const (
	EventOnlineUsers    = "onlineUsers"
	EventReceiveMessage = "receiveMessage"
	EventSeenUpdate     = "seenUpdate"
)

// Event is the wire envelope in both directions: a type tag plus a payload
// decoded per type.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func newEvent(typ string, data any) Event {
	raw, _ := json.Marshal(data)
	return Event{Type: typ, Data: raw}
}

type JoinPayload struct {
	UserID uint `json:"userId"`
}

type SendMessagePayload struct {
	Sender    uint   `json:"sender"`
	Receiver  uint   `json:"receiver"`
	RequestID uint   `json:"requestId"`
	Text      string `json:"text"`
	FileURL   string `json:"fileUrl,omitempty"`
	FileType  string `json:"fileType,omitempty"`
}

type TypingPayload struct {
	Sender   uint `json:"sender"`
	Receiver uint `json:"receiver"`
}

type MarkSeenPayload struct {
	UserID    uint `json:"userId"`
	RequestID uint `json:"requestId"`
}

// TypingNotice goes to the receiver of a typing/stopTyping relay.
type TypingNotice struct {
	From uint `json:"from"`
}

// SeenNotice announces that a request thread's messages were marked seen.
type SeenNotice struct {
	RequestID uint `json:"requestId"`
}
