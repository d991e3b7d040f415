package http

import (
	"net/http"

	"elitepainters/internal/entity"
	"elitepainters/internal/usecase"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authUc usecase.AuthUsecase
	logger zerolog.Logger
}

func NewAuthHandler(authUc usecase.AuthUsecase, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authUc: authUc,
		logger: logger,
	}
}

// Register returns the POST /auth/{role}/register handler.
func (h *AuthHandler) Register(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		authResponse, err := h.authUc.Register(r.Context(), role, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}

		h.logger.Info().Str("role", role).Str("user_id", authResponse.User.Id).Msg("account registered")
		writeJSON(w, http.StatusCreated, authResponse)
	}
}

// Login returns the POST /auth/{role}/login handler.
func (h *AuthHandler) Login(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "email and password are required")
			return
		}

		authResponse, err := h.authUc.Login(r.Context(), role, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse)
	}
}
