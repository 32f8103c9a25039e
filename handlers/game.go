package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/amjadhq/commission/cache"
	"github.com/amjadhq/commission/game"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/middleware"
)

const gameCacheKey = "game:scorecard"

// Short TTL: live scores move, and the upstream allows frequent polls.
const gameCacheTTL = 30 * time.Second

type GameHandler struct {
	client  *game.Client
	cache   cache.Cache
	metrics *metrics.Metrics
}

func NewGameHandler(client *game.Client, c cache.Cache, m *metrics.Metrics) *GameHandler {
	return &GameHandler{client: client, cache: c, metrics: m}
}

// Get handles GET /game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(gameCacheKey); ok {
		h.metrics.ObserveCache("game", true)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}
	h.metrics.ObserveCache("game", false)

	card, err := h.client.Scorecard(r.Context())
	h.metrics.ObserveFetch("schedule", err)
	if err != nil {
		slog.Warn("scorecard unavailable", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "upstream", "Schedule source unavailable")
		return
	}
	if card == nil {
		// No game to feature; the client hides the card.
		middleware.JSONResponse(w, http.StatusOK, struct {
			Game *game.Scorecard `json:"game"`
		}{})
		return
	}

	payload, err := json.Marshal(struct {
		Game *game.Scorecard `json:"game"`
	}{Game: card})
	if err != nil {
		slog.Error("failed to encode scorecard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to build scorecard")
		return
	}
	h.cache.Set(gameCacheKey, payload, gameCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
