package http

import (
	"net/http"

	"elitepainters/internal/usecase"

	"github.com/rs/zerolog"
)

type DashboardHandler struct {
	dashboardUc usecase.DashboardUsecase
	logger      zerolog.Logger
}

func NewDashboardHandler(dashboardUc usecase.DashboardUsecase, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUc: dashboardUc,
		logger:      logger,
	}
}

// Method Get /admin/dashboard
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardUc.Admin(r.Context(), ClaimsFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// Method Get /customer/dashboard
func (h *DashboardHandler) Customer(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardUc.Customer(r.Context(), ClaimsFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
