package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amjadhq/commission/cache"
	"github.com/amjadhq/commission/feed"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/middleware"
	"github.com/amjadhq/commission/models"
)

const feedCacheKey = "feed:merged"

type FeedHandler struct {
	fetcher *feed.Fetcher
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewFeedHandler(fetcher *feed.Fetcher, c cache.Cache, ttl time.Duration, m *metrics.Metrics) *FeedHandler {
	return &FeedHandler{fetcher: fetcher, cache: c, ttl: ttl, metrics: m}
}

// List handles GET /feed. An optional ?source= query filters articles
// by their source label (e.g. ESPN, r/Seahawks).
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	if cached, ok := h.cache.Get(feedCacheKey); ok {
		h.metrics.ObserveCache("feed", true)
		if source == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		var full models.FeedResponse
		if err := json.Unmarshal(cached, &full); err == nil {
			middleware.JSONResponse(w, http.StatusOK, models.FeedResponse{
				Articles: filterBySource(full.Articles, source),
			})
			return
		}
		// Corrupt cache entry; fall through and refetch.
		h.cache.Delete(feedCacheKey)
	}
	h.metrics.ObserveCache("feed", false)

	articles := h.fetcher.Fetch(r.Context())

	payload, err := json.Marshal(models.FeedResponse{Articles: articles})
	if err != nil {
		slog.Error("failed to encode feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to build feed")
		return
	}

	// An all-sources-down cycle yields an empty list; don't cache it so
	// the next request retries immediately.
	if len(articles) > 0 {
		h.cache.Set(feedCacheKey, payload, h.ttl)
	}

	if source != "" {
		middleware.JSONResponse(w, http.StatusOK, models.FeedResponse{
			Articles: filterBySource(articles, source),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func filterBySource(articles []models.Article, source string) []models.Article {
	filtered := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if strings.EqualFold(a.Source, source) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
