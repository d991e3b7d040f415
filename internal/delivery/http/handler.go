package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"elitepainters/internal/entity"
	"elitepainters/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Response struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Ok: status < http.StatusBadRequest, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Ok: status < http.StatusBadRequest, Message: message})
}

// writeError maps usecase errors onto a status. Anything unexpected is
// logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthorized), errors.Is(err, usecase.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrUnresolvedRecipient), errors.Is(err, usecase.ErrEmailAlreadyTaken):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		writeMessage(w, status, "internal server error")
		return
	}
	writeMessage(w, status, err.Error())
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionCounter reports the realtime connections held by this process.
type ConnectionCounter interface {
	GetClientCount() int
}

type HealthStatus struct {
	Status      string `json:"status"`
	Mongo       string `json:"mongo"`
	Connections int    `json:"connections"`
}

type HttpHandler struct {
	chatUc      usecase.ChatUsecase
	store       Pinger
	connections ConnectionCounter
	logger      zerolog.Logger
}

func NewHttpHandler(chatUc usecase.ChatUsecase, store Pinger, connections ConnectionCounter, logger zerolog.Logger) *HttpHandler {
	return &HttpHandler{
		chatUc:      chatUc,
		store:       store,
		connections: connections,
		logger:      logger,
	}
}

// Method Get /health
func (h *HttpHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{Status: "ok", Mongo: "up", Connections: h.connections.GetClientCount()}
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check: store unreachable")
		status.Status, status.Mongo = "degraded", "down"
		writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Method Post /chat/messages
func (h *HttpHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req entity.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := ClaimsFromContext(r.Context())
	if claims.IsCustomer() && req.CustomerId == "" {
		req.CustomerId = claims.UserId
	}

	message, err := h.chatUc.Send(r.Context(), claims, req.CustomerId, req.Body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// Method Get /chat/{customerId}/messages
func (h *HttpHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	customerId := chi.URLParam(r, "customerId")

	messages, err := h.chatUc.History(r.Context(), ClaimsFromContext(r.Context()), customerId)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// Method Post /chat/{customerId}/read
func (h *HttpHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	customerId := chi.URLParam(r, "customerId")

	updated, err := h.chatUc.MarkRead(r.Context(), ClaimsFromContext(r.Context()), customerId)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// Method Get /chat/unread
func (h *HttpHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.chatUc.UnreadCount(r.Context(), ClaimsFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}
