package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/stow/internal/inventory"
)

// Client implements Gateway against a remote stow server's JSON API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout. Ignored if WithHTTPClient is
// also supplied.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a gateway client for the API rooted at baseURL
// (e.g. "https://stow.example.com"). apiKey may be empty when the server
// does not require authentication.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListLocations(ctx context.Context) ([]inventory.Location, error) {
	var out []inventory.Location
	if err := c.get(ctx, "/api/locations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTotes(ctx context.Context) ([]inventory.Tote, error) {
	var out []inventory.Tote
	if err := c.get(ctx, "/api/totes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListItems(ctx context.Context) ([]inventory.Item, error) {
	var out []inventory.Item
	if err := c.get(ctx, "/api/items", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]inventory.User, error) {
	var out []inventory.User
	if err := c.get(ctx, "/api/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLocation(ctx context.Context, params inventory.LocationParams) (inventory.Location, error) {
	var out inventory.Location
	err := c.post(ctx, "/api/locations", params, &out)
	return out, err
}

func (c *Client) CreateTote(ctx context.Context, params inventory.ToteParams) (inventory.Tote, error) {
	var out inventory.Tote
	err := c.post(ctx, "/api/totes", params, &out)
	return out, err
}

func (c *Client) CreateItem(ctx context.Context, params inventory.ItemParams, toteID string) (inventory.Item, error) {
	path := "/api/items"
	if toteID != "" {
		path = "/api/totes/" + url.PathEscape(toteID) + "/items"
	}
	var out inventory.Item
	err := c.post(ctx, path, params, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, params inventory.UserParams) (inventory.User, error) {
	var out inventory.User
	err := c.post(ctx, "/api/users", params, &out)
	return out, err
}

// ExportArchive asks the server to produce a full export and returns the
// raw zip blob. Used by the CLI so the server's own snapshot logic runs.
func (c *Client) ExportArchive(ctx context.Context) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/export", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gateway: encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// Transport-level failure: DNS, refused connection, timeout. This is
		// the signal import uses to abort before any write.
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

// responseError converts a non-2xx response into an APIError, pulling the
// message out of the server's {"error": ...} body when present.
func responseError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.Message != "" {
				apiErr.Message = payload.Message
			} else {
				apiErr.Message = payload.Error
			}
		}
	}
	return apiErr
}
