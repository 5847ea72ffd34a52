// Package blogapi implements the app service interfaces against the
// blogging platform's HTTP JSON API.
package blogapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"blogtty/domain"
	"blogtty/infra/auth"
)

// Client is a thin HTTP wrapper for the platform API. It handles base URL
// construction, bearer token injection, and status-to-error mapping.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	log           *slog.Logger
}

// NewClient creates a platform API client. logger may be nil for silence.
func NewClient(baseURL string, tp auth.TokenProvider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{},
		log:           logger,
	}
}

// Get performs an authenticated GET request.
func (c *Client) Get(path string) ([]byte, error) {
	return c.do(http.MethodGet, path, nil)
}

// Post performs an authenticated POST request with a JSON body.
func (c *Client) Post(path string, body any) ([]byte, error) {
	return c.doJSON(http.MethodPost, path, body)
}

// Put performs an authenticated PUT request with a JSON body.
func (c *Client) Put(path string, body any) ([]byte, error) {
	return c.doJSON(http.MethodPut, path, body)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(path string) ([]byte, error) {
	return c.do(http.MethodDelete, path, nil)
}

func (c *Client) doJSON(method, path string, body any) ([]byte, error) {
	if body == nil {
		return c.do(method, path, nil)
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(method, path, bytes.NewReader(encoded))
}

func (c *Client) do(method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.tokenProvider != nil {
		token, err := c.tokenProvider.AccessToken()
		if err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("api error", "method", method, "path", path, "status", resp.StatusCode)
		return nil, statusError(method, path, resp.StatusCode, data)
	}

	return data, nil
}

// statusError maps well-known statuses onto domain sentinels so callers
// can branch with errors.Is.
func statusError(method, path string, code int, body []byte) error {
	base := fmt.Errorf("API %s %s returned %d: %s", method, path, code, string(body))
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, base)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %v", domain.ErrForbidden, base)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", domain.ErrNotFound, base)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %v", domain.ErrInvalidParent, base)
	default:
		return base
	}
}
