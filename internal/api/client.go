package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/romansashin/as-app/internal/content"
)

// Client talks to the practice service. A non-empty userID is sent as the
// X-Auth-User header, which is how the simulator impersonates a user in
// deployments where the auth proxy is absent.
type Client struct {
	baseURL string
	userID  string
	http    *http.Client
}

func NewClient(baseURL, userID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-Auth-User", c.userID)
	}
	return req, nil
}

// Content fetches and parses the catalog.
func (c *Client) Content(ctx context.Context) (*content.Catalog, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/content", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch content: status %d", resp.StatusCode)
	}

	var catalog content.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &catalog, nil
}

// Progress fetches the per-practice counts for the resolved user. An
// unauthenticated response or an unreachable server degrades to an empty
// mapping — callers treat that as "no progress yet".
func (c *Client) Progress(ctx context.Context) (map[string]int, error) {
	// Cache-buster: intermediaries love to cache this endpoint.
	path := "/api/progress?_=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return map[string]int{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return map[string]int{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch progress: status %d", resp.StatusCode)
	}

	var progress map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&progress); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if progress == nil {
		progress = map[string]int{}
	}
	return progress, nil
}

// AddProgress records one completion for the practice and returns the
// server-assigned event id.
func (c *Client) AddProgress(ctx context.Context, practiceID string) (int64, error) {
	body, err := json.Marshal(map[string]string{"practice_id": practiceID})
	if err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/progress", body)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("add progress: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("add progress: status %d", resp.StatusCode)
	}

	var result struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode add progress response: %w", err)
	}
	return result.ID, nil
}

func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout: status %d", resp.StatusCode)
	}
	return nil
}
