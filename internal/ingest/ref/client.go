package ref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultBaseURL points at the public league pages.
	DefaultBaseURL = "https://www.basketball-reference.com/leagues"

	// UserAgent for requests.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to stay under the site's rate limits.
	MinRequestInterval = 3 * time.Second
)

// Client fetches season standings pages with rate limiting.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	lastRequest time.Time
	interval    time.Duration
}

// NewClient creates a standings page client. An empty baseURL falls back to
// the public site.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		interval: MinRequestInterval,
	}
}

// FetchStandings downloads and parses the standings page for a season's
// ending year, e.g. 2023 for the 2022-2023 season.
func (c *Client) FetchStandings(ctx context.Context, endYear int) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/NBA_%d.html", c.baseURL, endYear)

	if !c.lastRequest.IsZero() {
		if elapsed := time.Since(c.lastRequest); elapsed < c.interval {
			select {
			case <-time.After(c.interval - elapsed):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	c.lastRequest = time.Now()
	if err != nil {
		return nil, fmt.Errorf("fetching standings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("standings page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing standings page: %w", err)
	}
	return doc, nil
}

// ParseHTML converts raw HTML to a goquery Document.
func ParseHTML(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
