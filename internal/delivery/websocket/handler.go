package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"elitepainters/infrastructure/ws"
	"elitepainters/internal/entity"
	"elitepainters/internal/metrics"
	"elitepainters/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type WebsocketHandler struct {
	hub      ws.IHub
	authUc   usecase.AuthUsecase
	chatUc   usecase.ChatUsecase
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewWebsocketHandler(hub ws.IHub, authUc usecase.AuthUsecase, chatUc usecase.ChatUsecase, allowedOrigins []string, logger zerolog.Logger) *WebsocketHandler {
	h := &WebsocketHandler{
		hub:    hub,
		authUc: authUc,
		chatUc: chatUc,
		logger: logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	hub.SetOnClientUnregister(h.HandleUnregisterClient)
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// accessToken reads the "token" query parameter, falling back to a bearer
// Authorization header for non-browser clients.
func accessToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}
	return ""
}

// Method Get /ws?token=<jwt>[&customerIdForRoom=<id>]
func (h *WebsocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := accessToken(r)
	if token == "" {
		http.Error(w, "missing access token", http.StatusUnauthorized)
		return
	}
	claims, err := h.authUc.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(claims.UserId, claims.Role, h.hub, conn, h.logger)
	h.hub.RegisterClient(client)
	metrics.WebsocketConnections.Inc()

	h.joinRooms(ctx, client, claims, r.URL.Query().Get("customerIdForRoom"))

	go client.WritePump()
	client.ReadPump(func(data []byte) {
		h.handleMessage(ctx, client, claims, data)
	})
}

// joinRooms places a fresh connection in its personal channel and, when
// known, its conversation room. Admins also follow the admins room.
func (h *WebsocketHandler) joinRooms(ctx context.Context, client *ws.UserClient, claims *entity.TokenClaims, customerIdForRoom string) {
	h.hub.Join(client, entity.UserChannel(claims.UserId))

	switch {
	case claims.IsCustomer():
		h.follow(client, claims.UserId)

	case claims.IsAdmin():
		// Notifications are addressed to the admin identity, which may be a
		// different account from the one logged in.
		adminId, err := h.chatUc.ParticipantId(ctx, claims)
		if err != nil {
			h.logger.Warn().Err(err).Str("user_id", claims.UserId).Msg("admin identity unresolved")
		} else if adminId != claims.UserId {
			h.hub.Join(client, entity.UserChannel(adminId))
		}

		h.hub.Join(client, entity.AdminsChannel)
		if customerId := strings.TrimSpace(customerIdForRoom); customerId != "" {
			h.follow(client, customerId)
		}
	}
}

// follow moves the connection into customerId's conversation room, leaving
// the one it followed before.
func (h *WebsocketHandler) follow(client *ws.UserClient, customerId string) {
	key := entity.ConversationKey(customerId)
	if client.Conversation == key {
		return
	}
	if client.Conversation != "" {
		h.hub.Leave(client, client.Conversation)
	}
	h.hub.Join(client, key)
	client.Conversation = key
	h.hub.SendToClient(client, encodeEvent(eventJoined, JoinedPayload{ConversationId: key}))
}

func (h *WebsocketHandler) HandleUnregisterClient(client *ws.UserClient) error {
	metrics.WebsocketConnections.Dec()
	h.logger.Debug().Str("user_id", client.UserId).Str("role", client.Role).Msg("websocket closed")
	return nil
}

func (h *WebsocketHandler) handleMessage(ctx context.Context, client *ws.UserClient, claims *entity.TokenClaims, data []byte) {
	var event IncomingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Debug().Err(err).Str("user_id", client.UserId).Msg("unreadable frame")
		return
	}

	customerId := strings.TrimSpace(event.CustomerId)
	if customerId == "" {
		// without a target the frame applies to the conversation the
		// connection currently follows
		customerId, _ = entity.CustomerIdFromKey(client.Conversation)
	}

	switch event.Type {
	case EventSend:
		_, err := h.chatUc.Send(ctx, claims, customerId, event.Body)
		h.reportPushError(client, event.Type, err)

	case EventTyping:
		err := h.chatUc.Typing(ctx, claims, customerId, event.IsTyping)
		h.reportPushError(client, event.Type, err)

	case EventRead:
		_, err := h.chatUc.MarkRead(ctx, claims, customerId)
		h.reportPushError(client, event.Type, err)

	case EventJoin:
		if !claims.IsAdmin() || customerId == "" {
			h.logger.Debug().Str("user_id", client.UserId).Msg("join ignored")
			return
		}
		h.follow(client, customerId)

	default:
		h.logger.Debug().Str("type", event.Type).Str("user_id", client.UserId).Msg("unknown event")
	}
}

// reportPushError drops rejected input silently. Failures the sender cannot
// fix by editing the frame are reported back on the same connection.
func (h *WebsocketHandler) reportPushError(client *ws.UserClient, eventType string, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrUnauthorized):
		h.logger.Debug().Err(err).Str("type", eventType).Str("user_id", client.UserId).Msg("push event dropped")
		return
	case errors.Is(err, usecase.ErrUnresolvedRecipient):
		h.hub.SendToClient(client, encodeEvent(entity.EventError, ErrorPayload{Type: eventType, Message: err.Error()}))
	default:
		h.logger.Error().Err(err).Str("type", eventType).Str("user_id", client.UserId).Msg("push event failed")
		h.hub.SendToClient(client, encodeEvent(entity.EventError, ErrorPayload{Type: eventType, Message: "internal server error"}))
	}
}
