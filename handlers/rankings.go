package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/amjadhq/commission/middleware"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/store"
)

type RankingsHandler struct {
	store store.Store
}

func NewRankingsHandler(st store.Store) *RankingsHandler {
	return &RankingsHandler{store: st}
}

// List handles GET /rankings
func (h *RankingsHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.GetAllRankings(r.Context())
	if err != nil {
		slog.Error("failed to load rankings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load rankings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, all)
}

// Get handles GET /rankings/{user}
func (h *RankingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")

	teams, err := h.store.GetRanking(r.Context(), user)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "not_found", "no ranking submitted for "+user)
		return
	}
	if err != nil {
		slog.Error("failed to load ranking", "error", err, "user_id", user)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load ranking")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RankingResponse{UserID: user, Teams: teams})
}

// Save handles PUT /rankings/{user}
func (h *RankingsHandler) Save(w http.ResponseWriter, r *http.Request, userID string) {
	user := r.PathValue("user")
	if user != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "forbidden", "you can only save your own ranking")
		return
	}

	var req models.SaveRankingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	if !models.ValidRanking(req.Teams) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request",
			"ranking must list all 32 team codes exactly once")
		return
	}

	if err := h.store.SaveRanking(r.Context(), userID, req.Teams); err != nil {
		slog.Error("failed to save ranking", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to save ranking")
		return
	}

	// Echo the stored list back as the authoritative copy.
	teams, err := h.store.GetRanking(r.Context(), userID)
	if err != nil {
		slog.Error("failed to reload ranking", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load ranking")
		return
	}

	slog.Info("ranking saved", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.RankingResponse{UserID: userID, Teams: teams})
}

// Consensus handles GET /rankings/consensus
func (h *RankingsHandler) Consensus(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.GetAllRankings(r.Context())
	if err != nil {
		slog.Error("failed to load rankings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to load rankings")
		return
	}

	users := make([]string, 0, len(all))
	for user := range all {
		users = append(users, user)
	}
	sort.Strings(users)

	rows := ComputeConsensus(all)

	middleware.JSONResponse(w, http.StatusOK, models.ConsensusResponse{
		Users:         users,
		Teams:         rows,
		Disagreements: Disagreements(rows),
	})
}
