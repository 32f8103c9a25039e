package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/amjadhq/commission/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestArticleID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc", "n22ci"},
		{"", "n0"},
	}
	for _, tt := range tests {
		if got := ArticleID(tt.input); got != tt.want {
			t.Errorf("ArticleID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	// Stable across calls, distinct across inputs.
	a := ArticleID("https://example.com/story-1")
	if a != ArticleID("https://example.com/story-1") {
		t.Error("expected stable ID for same input")
	}
	if a == ArticleID("https://example.com/story-2") {
		t.Error("expected distinct IDs for distinct inputs")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Geno <b>cooks</b> again</p>", "Geno cooks again"},
		{"plain text", "plain text"},
		{"  padded  ", "padded"},
		{"a &amp; b", "a & b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.input); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.seahawks.com/news/rss.xml", "Seahawks"},
		{"https://www.espn.com/espn/rss/nfl/news", "ESPN"},
		{"https://www.reddit.com/r/Seahawks/.rss", "r/Seahawks"},
		{"https://www.reddit.com/r/nfl/.rss", "r/NFL"},
		{"https://profootballtalk.nbcsports.com/feed/", "PFT"},
		{"https://www.cbssports.com/rss/headlines/nfl/", "CBS Sports"},
		{"https://www.nfl.com/rss/rsslanding?searchString=home", "NFL"},
		{"https://example.org/feed", "example"},
		{"not a url", "NFL"},
	}
	for _, tt := range tests {
		if got := SourceLabel(tt.url); got != tt.want {
			t.Errorf("SourceLabel(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	articles := []models.Article{
		{ID: "n1", Title: "Seahawks sign a kicker", PubDate: base},
		{ID: "n2", Title: "  seahawks SIGN a kicker ", PubDate: base.Add(time.Hour)},
		{ID: "n3", Title: "Trade rumors swirl", PubDate: base.Add(-time.Hour)},
	}

	got := Normalize(articles)
	if len(got) != 2 {
		t.Fatalf("expected 2 after dedupe, got %d", len(got))
	}
	// The newer duplicate survives because sort precedes dedupe.
	if got[0].ID != "n2" {
		t.Errorf("expected newest duplicate to survive, got %s", got[0].ID)
	}
	if got[1].ID != "n3" {
		t.Errorf("expected older distinct article second, got %s", got[1].ID)
	}
}

func TestNormalizeCap(t *testing.T) {
	base := time.Now()
	articles := make([]models.Article, 0, models.MaxArticles+10)
	for i := 0; i < models.MaxArticles+10; i++ {
		articles = append(articles, models.Article{
			ID:      fmt.Sprintf("n%d", i),
			Title:   fmt.Sprintf("story %d", i),
			PubDate: base.Add(-time.Duration(i) * time.Minute),
		})
	}

	got := Normalize(articles)
	if len(got) != models.MaxArticles {
		t.Errorf("expected cap at %d, got %d", models.MaxArticles, len(got))
	}
}

func proxyBody(status string, items string) string {
	return fmt.Sprintf(`{"status":%q,"feed":{"url":"https://www.espn.com/espn/rss/nfl/news"},"items":[%s]}`, status, items)
}

func TestFetchProxied(t *testing.T) {
	item := `{"title":"Big win","link":"https://example.com/win","description":"<p>They did it</p>",` +
		`"thumbnail":"","enclosure":{"link":"https://example.com/pic.jpg"},"pubDate":"2026-08-30 12:00:00"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rss_url") == "" {
			t.Errorf("expected rss_url query parameter, got %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, proxyBody("ok", item))
	}))
	defer server.Close()

	f := NewFetcher([]string{"https://www.espn.com/espn/rss/nfl/news"}, server.URL+"/v1/api.json?rss_url=", testLogger())
	got := f.Fetch(context.Background())

	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	a := got[0]
	if a.Title != "Big win" || a.Snippet != "They did it" {
		t.Errorf("unexpected normalization: %+v", a)
	}
	if a.Thumbnail != "https://example.com/pic.jpg" {
		t.Errorf("expected enclosure fallback for thumbnail, got %q", a.Thumbnail)
	}
	if a.Source != "ESPN" {
		t.Errorf("expected source from feed URL, got %q", a.Source)
	}
	if a.ID != ArticleID("https://example.com/win") {
		t.Errorf("expected link-derived ID, got %q", a.ID)
	}
	if a.PubDate.IsZero() {
		t.Error("expected parsed publish date")
	}
}

func TestFetchIsolatesFailingSources(t *testing.T) {
	good := `{"title":"Healthy source","link":"https://example.com/ok","description":"",` +
		`"thumbnail":"","enclosure":{},"pubDate":"2026-08-30 09:00:00"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Query().Get("rss_url") == "https://bad.example.com/feed":
			w.WriteHeader(http.StatusBadGateway)
		default:
			fmt.Fprint(w, proxyBody("ok", good))
		}
	}))
	defer server.Close()

	var (
		mu       sync.Mutex
		outcomes []error
	)
	f := NewFetcher(
		[]string{"https://bad.example.com/feed", "https://www.espn.com/espn/rss/nfl/news"},
		server.URL+"/?rss_url=", testLogger())
	f.Observe = func(source string, err error) {
		mu.Lock()
		outcomes = append(outcomes, err)
		mu.Unlock()
	}

	got := f.Fetch(context.Background())
	if len(got) != 1 || got[0].Title != "Healthy source" {
		t.Fatalf("expected the healthy source to survive, got %+v", got)
	}
	if len(outcomes) != 2 {
		t.Errorf("expected 2 observed fetches, got %d", len(outcomes))
	}
}

func TestFetchProxyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, proxyBody("error", ""))
	}))
	defer server.Close()

	f := NewFetcher([]string{"https://www.espn.com/espn/rss/nfl/news"}, server.URL+"/?rss_url=", testLogger())
	if got := f.Fetch(context.Background()); len(got) != 0 {
		t.Errorf("expected no articles from an error-status proxy, got %d", len(got))
	}
}
