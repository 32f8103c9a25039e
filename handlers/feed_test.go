package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amjadhq/commission/cache"
	"github.com/amjadhq/commission/feed"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/testutil"
)

func TestFeedHandlerCachesMergedFeed(t *testing.T) {
	fetches := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, `{"status":"ok","feed":{"url":"https://www.espn.com/espn/rss/nfl/news"},"items":[
			{"title":"Camp battle heats up","link":"https://example.com/camp","description":"",
			 "thumbnail":"","enclosure":{},"pubDate":"2026-08-30 08:00:00"}
		]}`)
	}))
	defer upstream.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := feed.NewFetcher([]string{"https://www.espn.com/espn/rss/nfl/news"},
		upstream.URL+"/?rss_url=", logger)
	h := NewFeedHandler(fetcher, cache.NewMemory(1), time.Minute, metrics.New())

	get := func() []models.Article {
		t.Helper()
		req := testutil.MakeRequest("GET", "/feed", nil, nil)
		w := httptest.NewRecorder()
		h.List(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Articles []models.Article `json:"articles"`
		}
		testutil.AssertJSON(t, w, &resp)
		return resp.Articles
	}

	first := get()
	if len(first) != 1 || first[0].Title != "Camp battle heats up" {
		t.Fatalf("unexpected articles %+v", first)
	}

	// The second request is served from cache.
	second := get()
	if len(second) != 1 {
		t.Fatalf("unexpected cached articles %+v", second)
	}
	if fetches != 1 {
		t.Errorf("expected 1 upstream fetch, got %d", fetches)
	}
}

func TestFeedHandlerEmptyResultNotCached(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := feed.NewFetcher([]string{"https://www.espn.com/espn/rss/nfl/news"},
		upstream.URL+"/?rss_url=", logger)
	c := cache.NewMemory(1)
	h := NewFeedHandler(fetcher, c, time.Minute, metrics.New())

	req := testutil.MakeRequest("GET", "/feed", nil, nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if _, ok := c.Get("feed:merged"); ok {
		t.Error("empty feed must not be cached")
	}
}

func TestFeedHandlerSourceFilter(t *testing.T) {
	fetches := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		if strings.Contains(r.URL.RawQuery, "espn") {
			fmt.Fprint(w, `{"status":"ok","feed":{"url":"https://www.espn.com/espn/rss/nfl/news"},"items":[
				{"title":"League roundup","link":"https://example.com/roundup","description":"",
				 "thumbnail":"","enclosure":{},"pubDate":"2026-08-30 08:00:00"}
			]}`)
			return
		}
		fmt.Fprint(w, `{"status":"ok","feed":{"url":"https://www.reddit.com/r/Seahawks/.rss"},"items":[
			{"title":"Roster cut reactions","link":"https://example.com/cuts","description":"",
			 "thumbnail":"","enclosure":{},"pubDate":"2026-08-30 09:00:00"}
		]}`)
	}))
	defer upstream.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := feed.NewFetcher([]string{
		"https://www.espn.com/espn/rss/nfl/news",
		"https://www.reddit.com/r/Seahawks/.rss",
	}, upstream.URL+"/?rss_url=", logger)
	h := NewFeedHandler(fetcher, cache.NewMemory(1), time.Minute, metrics.New())

	get := func(path string) []models.Article {
		t.Helper()
		req := testutil.MakeRequest("GET", path, nil, nil)
		w := httptest.NewRecorder()
		h.List(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.FeedResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.Articles
	}

	all := get("/feed")
	if len(all) != 2 {
		t.Fatalf("expected 2 articles, got %+v", all)
	}

	espn := get("/feed?source=espn")
	if len(espn) != 1 || espn[0].Source != "ESPN" {
		t.Fatalf("expected only the ESPN article, got %+v", espn)
	}
	if fetches != 2 {
		t.Errorf("filtered request should be served from cache, got %d fetches", fetches)
	}

	if got := get("/feed?source=PFT"); len(got) != 0 {
		t.Errorf("expected no PFT articles, got %+v", got)
	}
}
