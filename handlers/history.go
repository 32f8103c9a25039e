package handlers

import (
	"net/http"

	"github.com/amjadhq/commission/history"
	"github.com/amjadhq/commission/middleware"
)

type HistoryHandler struct {
	service *history.Service
}

func NewHistoryHandler(service *history.Service) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// Get handles GET /history
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.service.Dashboard(r.Context()))
}
