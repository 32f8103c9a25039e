package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/amjadhq/commission/cliparse"
	"github.com/amjadhq/commission/identity"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/middleware"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/store"
)

type TakesHandler struct {
	store   store.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewTakesHandler(st store.Store, cfg cliparse.Config, m *metrics.Metrics) *TakesHandler {
	return &TakesHandler{store: st, cfg: cfg, metrics: m}
}

// List handles GET /takes
func (h *TakesHandler) List(w http.ResponseWriter, r *http.Request) {
	takes, err := h.store.GetTakes(r.Context())
	if err != nil {
		slog.Error("failed to load takes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load takes")
		return
	}

	board := make([]models.TakeWithVotes, 0, len(takes))
	for _, take := range takes {
		votes, err := h.store.GetVotes(r.Context(), take.ID)
		if err != nil {
			slog.Error("failed to load votes", "error", err, "take_id", take.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load votes")
			return
		}
		board = append(board, models.TakeWithVotes{Take: take, Votes: votes})
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// Create handles POST /takes
func (h *TakesHandler) Create(w http.ResponseWriter, r *http.Request, userID string) {
	var req models.AddTakeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "take text is required")
		return
	}
	if utf8.RuneCountInString(text) > models.MaxTakeLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "take text exceeds 280 characters")
		return
	}

	take, err := h.store.AddTake(r.Context(), text, userID)
	if err != nil {
		slog.Error("failed to add take", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to post take")
		return
	}
	h.metrics.TakeCreated()

	slog.Info("take posted", "take_id", take.ID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddTakeResponse{Take: take})
}

// Delete handles DELETE /takes/{id} (admin only)
func (h *TakesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := identity.ValidateAdminKey(r, h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "forbidden", "valid X-Admin-Key required")
		return
	}

	takeID := r.PathValue("id")
	if takeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "take id is required")
		return
	}

	if err := h.store.DeleteTake(r.Context(), takeID); err != nil {
		slog.Error("failed to delete take", "error", err, "take_id", takeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to delete take")
		return
	}

	slog.Info("take deleted", "take_id", takeID)

	w.WriteHeader(http.StatusNoContent)
}

// GetVotes handles GET /takes/{id}/votes
func (h *TakesHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	takeID := r.PathValue("id")
	if takeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "take id is required")
		return
	}

	votes, err := h.store.GetVotes(r.Context(), takeID)
	if err != nil {
		slog.Error("failed to load votes", "error", err, "take_id", takeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}

// CastVote handles POST /takes/{id}/votes
func (h *TakesHandler) CastVote(w http.ResponseWriter, r *http.Request, userID string) {
	takeID := r.PathValue("id")
	if takeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "take id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	if !models.IsVoteSide(req.Side) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "side must be agree or disagree")
		return
	}

	err := h.store.CastVote(r.Context(), takeID, req.Side, userID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "not_found", "take not found")
		return
	}
	if err != nil {
		slog.Error("failed to cast vote", "error", err, "take_id", takeID, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to cast vote")
		return
	}
	h.metrics.VoteCast()

	votes, err := h.store.GetVotes(r.Context(), takeID)
	if err != nil {
		slog.Error("failed to reload votes", "error", err, "take_id", takeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load votes")
		return
	}

	slog.Info("vote cast", "take_id", takeID, "side", req.Side, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{Votes: votes})
}
