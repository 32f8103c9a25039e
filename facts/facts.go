// Package facts is a thin client for a page-summary endpoint, used
// for the team trivia card.
package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Summary is the normalized page summary.
type Summary struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail string `json:"thumbnail,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Client fetches summaries from a REST page-summary API. BaseURL is
// the endpoint prefix the topic is appended to.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// summaryResponse is the upstream wire shape.
type summaryResponse struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Lookup fetches the summary for a topic identifier, e.g.
// "Seattle_Seahawks".
func (c *Client) Lookup(ctx context.Context, topic string) (*Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/"+url.PathEscape(topic), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no summary for topic %q", topic)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summary endpoint returned status %d", resp.StatusCode)
	}

	var wire summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}

	return &Summary{
		Title:     wire.Title,
		Extract:   wire.Extract,
		Thumbnail: wire.Thumbnail.Source,
		URL:       wire.ContentURLs.Desktop.Page,
	}, nil
}
