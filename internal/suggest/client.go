package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request and Response are the wire shapes of POST /api/suggestions.
type Request struct {
	TaskTitle string `json:"taskTitle"`
}

type Response struct {
	Categories []string `json:"categories,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Client calls a companion server's suggestion endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) SuggestCategories(ctx context.Context, title string) ([]string, error) {
	body, err := json.Marshal(Request{TaskTitle: title})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/suggestions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	var out Response
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response (status %d): %v", ErrUnavailable, res.StatusCode, err)
	}
	switch {
	case res.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, out.Error)
	case res.StatusCode/100 != 2 || out.Error != "":
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, res.StatusCode, out.Error)
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	return out.Categories, nil
}
