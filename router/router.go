package router

import (
	"log/slog"
	"net/http"

	"github.com/amjadhq/commission/cache"
	"github.com/amjadhq/commission/cliparse"
	"github.com/amjadhq/commission/facts"
	"github.com/amjadhq/commission/feed"
	"github.com/amjadhq/commission/game"
	"github.com/amjadhq/commission/handlers"
	"github.com/amjadhq/commission/history"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/middleware"
	"github.com/amjadhq/commission/store"
)

// teamAbbr identifies the followed team in schedule competitor lists.
const teamAbbr = "SEA"

func NewRouter(st store.Store, cfg cliparse.Config, m *metrics.Metrics, c cache.Cache) *http.ServeMux {
	mux := http.NewServeMux()

	// Upstream clients
	fetcher := feed.NewFetcher(cfg.FeedURLs, cfg.FeedProxyURL, slog.Default())
	fetcher.Observe = m.ObserveFetch
	gameClient := game.NewClient(cfg.ScheduleURL, teamAbbr, slog.Default())
	factsClient := facts.NewClient(cfg.FactBaseURL)

	// Initialize handlers
	feedHandler := handlers.NewFeedHandler(fetcher, c, cfg.FeedCacheTTL, m)
	reactionsHandler := handlers.NewReactionsHandler(st, m)
	takesHandler := handlers.NewTakesHandler(st, cfg, m)
	rankingsHandler := handlers.NewRankingsHandler(st)
	gameHandler := handlers.NewGameHandler(gameClient, c, m)
	historyHandler := handlers.NewHistoryHandler(history.NewService(gameClient, slog.Default()))
	factsHandler := handlers.NewFactsHandler(factsClient, c, m)
	identityHandler := handlers.NewIdentityHandler(st)

	wrap := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithMetrics(route, m, middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]any{
			"status": "ok",
			"shared": st.Ready(),
		})
	})

	// News feed and reactions
	mux.HandleFunc("GET /feed", wrap("/feed", feedHandler.List))
	mux.HandleFunc("GET /feed/{id}/reactions", wrap("/feed/{id}/reactions", reactionsHandler.Get))
	mux.HandleFunc("POST /feed/{id}/reactions", wrap("/feed/{id}/reactions",
		middleware.RequireIdentity(reactionsHandler.Toggle)))

	// Hot takes board
	mux.HandleFunc("GET /takes", wrap("/takes", takesHandler.List))
	mux.HandleFunc("POST /takes", wrap("/takes", middleware.RequireIdentity(takesHandler.Create)))
	mux.HandleFunc("DELETE /takes/{id}", wrap("/takes/{id}", takesHandler.Delete))
	mux.HandleFunc("GET /takes/{id}/votes", wrap("/takes/{id}/votes", takesHandler.GetVotes))
	mux.HandleFunc("POST /takes/{id}/votes", wrap("/takes/{id}/votes",
		middleware.RequireIdentity(takesHandler.CastVote)))

	// Power rankings
	mux.HandleFunc("GET /rankings", wrap("/rankings", rankingsHandler.List))
	mux.HandleFunc("GET /rankings/consensus", wrap("/rankings/consensus", rankingsHandler.Consensus))
	mux.HandleFunc("GET /rankings/{user}", wrap("/rankings/{user}", rankingsHandler.Get))
	mux.HandleFunc("PUT /rankings/{user}", wrap("/rankings/{user}",
		middleware.RequireIdentity(rankingsHandler.Save)))

	// Game, history, facts
	mux.HandleFunc("GET /game", wrap("/game", gameHandler.Get))
	mux.HandleFunc("GET /history", wrap("/history", historyHandler.Get))
	mux.HandleFunc("GET /facts/{topic}", wrap("/facts/{topic}", factsHandler.Get))

	// Device identity (local mode)
	mux.HandleFunc("GET /identity", wrap("/identity", identityHandler.Get))
	mux.HandleFunc("PUT /identity", wrap("/identity", identityHandler.Set))

	// Prometheus exposition
	mux.Handle("GET /metrics", m.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("commission API v1"))
	})

	return mux
}
