package http

import (
	"net/http"

	"elitepainters/internal/entity"
	"elitepainters/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type QuoteHandler struct {
	quoteUc usecase.QuoteUsecase
	logger  zerolog.Logger
}

func NewQuoteHandler(quoteUc usecase.QuoteUsecase, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteUc: quoteUc,
		logger:  logger,
	}
}

// Method Post /quote
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entity.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.quoteUc.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

// Method Get /admin/quotes
func (h *QuoteHandler) Index(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quoteUc.Index(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

// Method Delete /admin/quotes/{id}
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.quoteUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "quote deleted")
}

// Method Get /admin/quotes/count
func (h *QuoteHandler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := h.quoteUc.Count(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	pending, err := h.quoteUc.NewQuoteCount()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": total, "newQuotes": pending})
}

// Method Delete /admin/quotes/new
func (h *QuoteHandler) ResetNew(w http.ResponseWriter, r *http.Request) {
	h.quoteUc.ResetNewQuotes()
	writeJSON(w, http.StatusOK, map[string]int64{"newQuotes": 0})
}
