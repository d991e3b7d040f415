package entity

const (
	EventChatMessage = "chat:message"
	EventChatNotify  = "chat:notify"
	EventChatTyping  = "chat:typing"
	EventQuoteNew    = "quote:new"
	EventError       = "error"
)

// Event is the envelope of every frame pushed to a realtime connection.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type NewQuoteNotice struct {
	QuoteId   string `json:"quoteId"`
	NewQuotes int64  `json:"newQuotes"`
}
