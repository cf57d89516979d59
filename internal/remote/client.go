// Package remote pushes the dashboard bundle to the remote save endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lifeos/internal/core"
)

type Client struct {
	url  string
	http *http.Client
}

// NewClient targets the full save URL, e.g. http://localhost:3000/save.
func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// URL returns the save endpoint.
func (c *Client) URL() string {
	return c.url
}

// Push sends the bundle and checks the endpoint acknowledged it.
func (c *Client) Push(ctx context.Context, b core.Bundle) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post snapshot: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post snapshot: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	var ack struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil || ack.Status != "saved" {
		return fmt.Errorf("post snapshot: unexpected response %q", bytes.TrimSpace(raw))
	}
	return nil
}
