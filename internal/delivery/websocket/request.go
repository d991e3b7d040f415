package websocket

const (
	EventSend   = "send"
	EventTyping = "typing"
	EventJoin   = "join"
	EventRead   = "read"
)

// IncomingEvent is a frame pushed by a connected client.
type IncomingEvent struct {
	Type       string `json:"type"`
	CustomerId string `json:"customerId"`
	Body       string `json:"body,omitempty"`
	IsTyping   bool   `json:"isTyping,omitempty"`
}
