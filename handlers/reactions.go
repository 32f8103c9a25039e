package handlers

import (
	"log/slog"
	"net/http"

	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/middleware"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/store"
)

type ReactionsHandler struct {
	store   store.Store
	metrics *metrics.Metrics
}

func NewReactionsHandler(st store.Store, m *metrics.Metrics) *ReactionsHandler {
	return &ReactionsHandler{store: st, metrics: m}
}

// Get handles GET /feed/{id}/reactions
func (h *ReactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")
	if targetID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "article id is required")
		return
	}

	reactions, err := h.store.GetReactions(r.Context(), targetID)
	if err != nil {
		slog.Error("failed to load reactions", "error", err, "target_id", targetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load reactions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reactions)
}

// Toggle handles POST /feed/{id}/reactions
func (h *ReactionsHandler) Toggle(w http.ResponseWriter, r *http.Request, userID string) {
	targetID := r.PathValue("id")
	if targetID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "article id is required")
		return
	}

	var req models.ToggleReactionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	if !models.IsKnownEmoji(req.Emoji) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "unknown reaction emoji")
		return
	}

	added, err := h.store.ToggleReaction(r.Context(), targetID, req.Emoji, userID)
	if err != nil {
		slog.Error("failed to toggle reaction", "error", err, "target_id", targetID, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to toggle reaction")
		return
	}
	h.metrics.ReactionToggled()

	// Re-read so the client renders the authoritative state.
	reactions, err := h.store.GetReactions(r.Context(), targetID)
	if err != nil {
		slog.Error("failed to reload reactions", "error", err, "target_id", targetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load reactions")
		return
	}

	slog.Info("reaction toggled", "target_id", targetID, "emoji", req.Emoji, "user_id", userID, "added", added)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleReactionResponse{
		Added:     added,
		Reactions: reactions,
	})
}
