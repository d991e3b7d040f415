package websocket

import (
	"encoding/json"

	"elitepainters/internal/entity"
)

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type JoinedPayload struct {
	ConversationId string `json:"conversationId"`
}

const eventJoined = "chat:joined"

func encodeEvent(event string, data any) []byte {
	payload, err := json.Marshal(entity.Event{Event: event, Data: data})
	if err != nil {
		return nil
	}
	return payload
}
