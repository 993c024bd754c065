package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	rowsPath  = "/displayboard/data"
	boardPath = "/displayboard/view"
)

// Client fetches the display board over HTTP. The board host throttles
// aggressively, so all requests go through a token bucket limiter.
type Client struct {
	httpClient *http.Client
	base       *url.URL
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a board client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed base URL: %w", err)
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		base:       base,
		limiter:    rate.NewLimiter(rate.Limit(rps), 2),
		logger:     logger,
	}, nil
}

// Fetch retrieves both board payloads and normalizes them into a Snapshot.
// Any transport or decode failure propagates to the caller, aborting that
// polling cycle only.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	rowsBody, err := c.get(ctx, rowsPath)
	if err != nil {
		return nil, fmt.Errorf("fetch board rows: %w", err)
	}
	rows, err := decodeRows(rowsBody)
	if err != nil {
		return nil, fmt.Errorf("decode board rows: %w", err)
	}

	markup, err := c.get(ctx, boardPath)
	if err != nil {
		return nil, fmt.Errorf("fetch board markup: %w", err)
	}

	return Normalize(rows, string(markup), c.base, time.Now().UTC(), c.logger)
}

// decodeRows accepts either a bare JSON array or the {"data": [...]} wrapper
// the board serves depending on endpoint version.
func decodeRows(body []byte) ([]map[string]any, error) {
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}
	var wrapped struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected row payload shape: %w", err)
	}
	return wrapped.Data, nil
}

// get performs a rate-limited GET request against the board host.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.base.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("board %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
