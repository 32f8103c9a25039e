package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/amjadhq/commission/cache"
	"github.com/amjadhq/commission/facts"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/middleware"
)

// Summaries are near-static; cache them for a day.
const factCacheTTL = 24 * time.Hour

type FactsHandler struct {
	client  *facts.Client
	cache   cache.Cache
	metrics *metrics.Metrics
}

func NewFactsHandler(client *facts.Client, c cache.Cache, m *metrics.Metrics) *FactsHandler {
	return &FactsHandler{client: client, cache: c, metrics: m}
}

// Get handles GET /facts/{topic}
func (h *FactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	if topic == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_request", "topic is required")
		return
	}

	cacheKey := "fact:" + topic
	if cached, ok := h.cache.Get(cacheKey); ok {
		h.metrics.ObserveCache("fact", true)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}
	h.metrics.ObserveCache("fact", false)

	summary, err := h.client.Lookup(r.Context(), topic)
	h.metrics.ObserveFetch("facts", err)
	if err != nil {
		slog.Warn("fact lookup failed", "error", err, "topic", topic)
		middleware.ErrorResponse(w, http.StatusBadGateway, "upstream", "Fact source unavailable")
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		slog.Error("failed to encode summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to build summary")
		return
	}
	h.cache.Set(cacheKey, payload, factCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
