package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"elitepainters/internal/entity"
	"elitepainters/internal/metrics"
	"elitepainters/internal/repository"

	"github.com/rs/zerolog"
)

// RoomPublisher is the realtime fan-out. Publishing is fire-and-forget.
type RoomPublisher interface {
	PublishToRoom(room string, message []byte)
}

type ChatUsecase interface {
	Send(ctx context.Context, sender *entity.TokenClaims, customerId, body string) (entity.Message, error)
	Typing(ctx context.Context, sender *entity.TokenClaims, customerId string, isTyping bool) error
	History(ctx context.Context, viewer *entity.TokenClaims, customerId string) ([]entity.Message, error)
	UnreadCount(ctx context.Context, viewer *entity.TokenClaims) (int64, error)
	MarkRead(ctx context.Context, viewer *entity.TokenClaims, customerId string) (int64, error)
	ParticipantId(ctx context.Context, principal *entity.TokenClaims) (string, error)
}

type chatUsecase struct {
	messageRepo repository.MessageRepository
	admins      AdminResolver
	publisher   RoomPublisher
	logger      zerolog.Logger
}

func NewChatUsecase(messageRepo repository.MessageRepository, admins AdminResolver, publisher RoomPublisher, logger zerolog.Logger) ChatUsecase {
	return &chatUsecase{
		messageRepo: messageRepo,
		admins:      admins,
		publisher:   publisher,
		logger:      logger,
	}
}

// ParticipantId maps a principal onto its side of a conversation. Every
// admin account speaks as the resolved admin identity.
func (c *chatUsecase) ParticipantId(ctx context.Context, principal *entity.TokenClaims) (string, error) {
	switch {
	case principal.IsCustomer():
		return principal.UserId, nil
	case principal.IsAdmin():
		return c.admins.AdminId(ctx)
	default:
		return "", ErrUnauthorized
	}
}

// authorize checks that principal may act on customerId's conversation.
func authorize(principal *entity.TokenClaims, customerId string) error {
	if !principal.IsAdmin() && !principal.IsCustomer() {
		return ErrUnauthorized
	}
	if customerId == "" {
		return validationError("customerId is required")
	}
	if principal.IsCustomer() && principal.UserId != customerId {
		return ErrForbidden
	}
	return nil
}

// Send persists a message and then publishes it to the conversation room
// and to the recipient's personal channel. A publish failure never fails
// the send.
func (c *chatUsecase) Send(ctx context.Context, sender *entity.TokenClaims, customerId, body string) (entity.Message, error) {
	customerId = strings.TrimSpace(customerId)
	if err := authorize(sender, customerId); err != nil {
		metrics.ChatSendRejected.WithLabelValues("target").Inc()
		return entity.Message{}, err
	}
	if strings.TrimSpace(body) == "" {
		metrics.ChatSendRejected.WithLabelValues("body").Inc()
		return entity.Message{}, validationError("body is required")
	}

	adminId, err := c.admins.AdminId(ctx)
	if err != nil {
		metrics.ChatSendRejected.WithLabelValues("recipient").Inc()
		return entity.Message{}, err
	}

	message := entity.Message{
		ConversationId: entity.ConversationKey(customerId),
		FromRole:       sender.Role,
		Body:           body,
	}
	if sender.IsAdmin() {
		message.FromId, message.ToId = adminId, customerId
	} else {
		message.FromId, message.ToId = customerId, adminId
	}

	message, err = c.messageRepo.Create(ctx, message)
	if err != nil {
		metrics.ChatSendRejected.WithLabelValues("store").Inc()
		return entity.Message{}, storeError(err)
	}
	metrics.ChatMessagesSent.WithLabelValues(message.FromRole).Inc()

	c.publish(message.ConversationId, "conversation", entity.Event{Event: entity.EventChatMessage, Data: message})
	c.publish(entity.UserChannel(message.ToId), "user", entity.Event{Event: entity.EventChatNotify, Data: message})

	return message, nil
}

// Typing is relayed to the conversation room only and never stored.
func (c *chatUsecase) Typing(ctx context.Context, sender *entity.TokenClaims, customerId string, isTyping bool) error {
	customerId = strings.TrimSpace(customerId)
	if err := authorize(sender, customerId); err != nil {
		return err
	}

	key := entity.ConversationKey(customerId)
	c.publish(key, "conversation", entity.Event{
		Event: entity.EventChatTyping,
		Data: entity.TypingEvent{
			CustomerId:     customerId,
			ConversationId: key,
			FromRole:       sender.Role,
			IsTyping:       isTyping,
		},
	})
	return nil
}

// History returns the conversation oldest first.
func (c *chatUsecase) History(ctx context.Context, viewer *entity.TokenClaims, customerId string) ([]entity.Message, error) {
	customerId = strings.TrimSpace(customerId)
	if err := authorize(viewer, customerId); err != nil {
		return nil, err
	}

	messages, err := c.messageRepo.GetByConversation(ctx, entity.MessageIndexFilter{
		ConversationId: entity.ConversationKey(customerId),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return messages, nil
}

// UnreadCount is computed from the store on every call.
func (c *chatUsecase) UnreadCount(ctx context.Context, viewer *entity.TokenClaims) (int64, error) {
	viewerId, err := c.ParticipantId(ctx, viewer)
	if err != nil {
		return 0, err
	}

	count, err := c.messageRepo.CountUnread(ctx, viewerId)
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

// MarkRead flags the viewer's unread messages in customerId's conversation.
// Calling it again is a no-op.
func (c *chatUsecase) MarkRead(ctx context.Context, viewer *entity.TokenClaims, customerId string) (int64, error) {
	customerId = strings.TrimSpace(customerId)
	if err := authorize(viewer, customerId); err != nil {
		return 0, err
	}

	viewerId, err := c.ParticipantId(ctx, viewer)
	if err != nil {
		return 0, err
	}

	updated, err := c.messageRepo.MarkRead(ctx, entity.ConversationKey(customerId), viewerId)
	if err != nil {
		return 0, storeError(err)
	}
	return updated, nil
}

func (c *chatUsecase) publish(room, kind string, event entity.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Error().Err(err).Str("room", room).Msg("marshal event")
		return
	}
	c.publisher.PublishToRoom(room, payload)
	metrics.ChatPublishes.WithLabelValues(kind).Inc()
}
