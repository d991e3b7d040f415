package entity

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Message is one chat utterance between a customer and the admin identity.
// Only Read changes after creation.
type Message struct {
	Id             string    `bson:"_id" json:"id"`
	ConversationId string    `bson:"conversationId" json:"conversationId"`
	FromRole       string    `bson:"fromRole" json:"fromRole"`
	FromId         string    `bson:"fromId" json:"fromId"`
	ToId           string    `bson:"toId" json:"toId"`
	Body           string    `bson:"body" json:"body"`
	Read           bool      `bson:"read" json:"read"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

type MessageIndexFilter struct {
	ConversationId string
	Limit          int
	Offset         int
}

type SendMessageRequest struct {
	CustomerId string `json:"customerId"`
	Body       string `json:"body"`
}

type TypingEvent struct {
	CustomerId     string `json:"customerId"`
	ConversationId string `json:"conversationId"`
	FromRole       string `json:"fromRole"`
	IsTyping       bool   `json:"isTyping"`
}
