// Package feed aggregates the configured NFL news sources into one
// normalized article list. Sources are fetched concurrently and a
// failing source is skipped rather than failing the aggregate.
package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/amjadhq/commission/models"
)

// Fetcher pulls articles from a list of RSS sources, either directly
// or through an RSS-to-JSON proxy.
type Fetcher struct {
	URLs      []string
	ProxyBase string // when set, fetch ProxyBase+url instead of parsing RSS directly
	Client    *http.Client
	Logger    *slog.Logger

	// Observe, when set, is called once per source fetch.
	Observe func(source string, err error)
}

// NewFetcher wires a fetcher with sane timeouts. proxyBase may be
// empty for direct RSS parsing.
func NewFetcher(urls []string, proxyBase string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		URLs:      urls,
		ProxyBase: proxyBase,
		Client:    &http.Client{Timeout: 15 * time.Second},
		Logger:    logger,
	}
}

// Fetch retrieves every configured source concurrently and merges the
// results: newest first, deduplicated by normalized title (the newer
// duplicate survives), capped at models.MaxArticles.
func (f *Fetcher) Fetch(ctx context.Context) []models.Article {
	var (
		mu     sync.Mutex
		merged []models.Article
		wg     sync.WaitGroup
	)

	for _, feedURL := range f.URLs {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()

			source := SourceLabel(feedURL)
			articles, err := f.fetchOne(ctx, feedURL)
			if f.Observe != nil {
				f.Observe(source, err)
			}
			if err != nil {
				f.Logger.Warn("skipping unavailable feed source",
					slog.String("source", source), slog.Any("error", err))
				return
			}

			mu.Lock()
			merged = append(merged, articles...)
			mu.Unlock()
		}(feedURL)
	}
	wg.Wait()

	return Normalize(merged)
}

// Normalize sorts newest-first, drops duplicate titles keeping the
// first (newest) occurrence, and caps the list.
func Normalize(articles []models.Article) []models.Article {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PubDate.After(articles[j].PubDate)
	})

	seen := make(map[string]struct{}, len(articles))
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		key := strings.ToLower(strings.TrimSpace(a.Title))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
		if len(out) == models.MaxArticles {
			break
		}
	}
	return out
}

func (f *Fetcher) fetchOne(ctx context.Context, feedURL string) ([]models.Article, error) {
	if f.ProxyBase != "" {
		return f.fetchProxied(ctx, feedURL)
	}
	return f.fetchDirect(ctx, feedURL)
}

func (f *Fetcher) fetchDirect(ctx context.Context, feedURL string) ([]models.Article, error) {
	parser := gofeed.NewParser()
	parser.Client = f.Client

	parsed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	source := SourceLabel(feedURL)
	articles := make([]models.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		thumbnail := ""
		if item.Image != nil {
			thumbnail = item.Image.URL
		} else if len(item.Enclosures) > 0 {
			thumbnail = item.Enclosures[0].URL
		}

		var pubDate time.Time
		if item.PublishedParsed != nil {
			pubDate = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pubDate = *item.UpdatedParsed
		} else {
			pubDate = ParseDate(item.Published)
		}

		articles = append(articles, models.Article{
			ID:        ArticleID(firstNonEmpty(item.Link, item.Title)),
			Title:     item.Title,
			Link:      item.Link,
			Snippet:   StripHTML(item.Description),
			Thumbnail: thumbnail,
			Source:    source,
			PubDate:   pubDate,
		})
	}
	return articles, nil
}

// SourceLabel maps a feed or article URL to the short label shown on
// news cards.
func SourceLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "NFL"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")

	switch {
	case strings.Contains(host, "seahawks"):
		return "Seahawks"
	case strings.Contains(host, "espn"):
		return "ESPN"
	case strings.Contains(host, "reddit") && strings.Contains(rawURL, "Seahawks"):
		return "r/Seahawks"
	case strings.Contains(host, "reddit"):
		return "r/NFL"
	case strings.Contains(host, "nbcsports"), strings.Contains(host, "profootballtalk"):
		return "PFT"
	case strings.Contains(host, "cbssports"):
		return "CBS Sports"
	case strings.Contains(host, "nfl.com"):
		return "NFL"
	}
	if part, _, ok := strings.Cut(host, "."); ok {
		return part
	}
	return host
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
