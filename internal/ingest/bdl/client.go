package bdl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the public v1 API root.
	DefaultBaseURL = "https://api.balldontlie.io/v1"

	// DefaultPerPage matches the upstream default page size.
	DefaultPerPage = 25
)

// Client talks to the balldontlie API. All list endpoints use cursor
// pagination; a nil next cursor means the last page.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client. An empty baseURL falls back to the public API.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListTeams fetches every team. The teams endpoint fits in one page.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var resp teamsResponse
	if err := c.get(ctx, "/teams", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListPlayers fetches one page of players. Pass the previous page's cursor to
// continue; nil starts from the beginning.
func (c *Client) ListPlayers(ctx context.Context, perPage int, cursor *int) ([]Player, *int, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(perPageOrDefault(perPage)))
	if cursor != nil {
		params.Set("cursor", strconv.Itoa(*cursor))
	}

	var resp playersResponse
	if err := c.get(ctx, "/players", params, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Data, resp.Meta.NextCursor, nil
}

// ListGames fetches one page of games for a starting year, e.g. 2022 for the
// 2022-2023 season.
func (c *Client) ListGames(ctx context.Context, seasonYear int, perPage int, cursor *int) ([]Game, *int, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(perPageOrDefault(perPage)))
	params.Add("seasons[]", strconv.Itoa(seasonYear))
	if cursor != nil {
		params.Set("cursor", strconv.Itoa(*cursor))
	}

	var resp gamesResponse
	if err := c.get(ctx, "/games", params, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Data, resp.Meta.NextCursor, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func perPageOrDefault(perPage int) int {
	if perPage <= 0 {
		return DefaultPerPage
	}
	return perPage
}
