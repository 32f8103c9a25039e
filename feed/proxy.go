package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amjadhq/commission/models"
)

// proxyResponse is the RSS-to-JSON proxy envelope.
type proxyResponse struct {
	Status string `json:"status"`
	Feed   struct {
		URL string `json:"url"`
	} `json:"feed"`
	Items []proxyItem `json:"items"`
}

type proxyItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Enclosure   struct {
		Link string `json:"link"`
	} `json:"enclosure"`
	PubDate string `json:"pubDate"`
}

func (f *Fetcher) fetchProxied(ctx context.Context, feedURL string) ([]models.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		f.ProxyBase+url.QueryEscape(feedURL), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build proxy request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proxy fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proxy returned status %d", resp.StatusCode)
	}

	var envelope proxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if envelope.Status != "ok" {
		return nil, fmt.Errorf("proxy reported status %q", envelope.Status)
	}

	sourceURL := envelope.Feed.URL
	if sourceURL == "" {
		sourceURL = feedURL
	}
	source := SourceLabel(sourceURL)

	articles := make([]models.Article, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		thumbnail := item.Thumbnail
		if thumbnail == "" {
			thumbnail = item.Enclosure.Link
		}

		articles = append(articles, models.Article{
			ID:        ArticleID(firstNonEmpty(item.Link, item.Title)),
			Title:     item.Title,
			Link:      item.Link,
			Snippet:   StripHTML(item.Description),
			Thumbnail: thumbnail,
			Source:    source,
			PubDate:   ParseDate(item.PubDate),
		})
	}
	return articles, nil
}
