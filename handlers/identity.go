package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/amjadhq/commission/middleware"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/store"
)

type IdentityHandler struct {
	store store.Store
}

func NewIdentityHandler(st store.Store) *IdentityHandler {
	return &IdentityHandler{store: st}
}

// Get handles GET /identity. In shared mode identity lives on the
// client; the response then carries the roster with no name.
func (h *IdentityHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := models.IdentityResponse{Roster: models.Roster}

	if device, ok := h.store.(store.DeviceIdentity); ok {
		name, err := device.Identity(r.Context())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to load identity", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load identity")
			return
		}
		resp.Name = name
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Set handles PUT /identity
func (h *IdentityHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req models.SelectIdentityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	if !models.IsRosterMember(req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "name must be one of the roster")
		return
	}

	device, ok := h.store.(store.DeviceIdentity)
	if !ok {
		middleware.ErrorResponse(w, http.StatusConflict, "conflict",
			"identity is client-side in shared mode; send X-User-Id instead")
		return
	}

	if err := device.SetIdentity(r.Context(), req.Name); err != nil {
		slog.Error("failed to persist identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to save identity")
		return
	}

	slog.Info("identity selected", "name", req.Name)

	middleware.JSONResponse(w, http.StatusOK, models.IdentityResponse{
		Name:   req.Name,
		Roster: models.Roster,
	})
}
