// Package backend provides the shared HTTP request gateway and error
// taxonomy used by the Jaeger, Loki and Prometheus tool adapters.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Client is a thin per-backend wrapper around a connection-reusable HTTP
// client bound to a base URL. One instance per backend is created at startup
// and closed at shutdown; it is safe for concurrent reuse across tool calls.
type Client struct {
	backend string // backend tag, also used for error tagging
	baseURL string // e.g. http://localhost:16686
	prefix  string // fixed API path prefix, e.g. "/api" for Jaeger
	hc      *http.Client
	log     *zap.Logger
}

// NewClient creates a gateway for one backend with a fixed request timeout.
func NewClient(backend, baseURL, prefix string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		backend: backend,
		baseURL: baseURL,
		prefix:  prefix,
		hc:      &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// Backend returns the client's backend tag.
func (c *Client) Backend() string { return c.backend }

// Logger returns the logger the client was constructed with.
func (c *Client) Logger() *zap.Logger { return c.log }

// Get issues a GET request against the backend and decodes the JSON body.
// Transport faults and non-2xx statuses fail with a backend-tagged error
// wrapping the cause and the originating URL. First failure is terminal for
// the call: there are no retries.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	u := c.baseURL + c.prefix + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	c.log.Debug("making backend request",
		zap.String("backend", c.backend),
		zap.String("url", u),
		zap.Any("params", params))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, Wrap(c.backend, fmt.Sprintf("failed to create request for %s", u), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Error("backend request failed", zap.String("backend", c.backend), zap.String("url", u), zap.Error(err))
		return nil, Wrap(c.backend, fmt.Sprintf("failed to call %s API at %s", c.backend, u), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, Errorf(c.backend, "%s API request to %s failed with status %d: %s",
			c.backend, u, resp.StatusCode, string(body))
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, Wrap(c.backend, fmt.Sprintf("failed to decode response from %s", u), err)
	}

	return result, nil
}

// Close releases the client's idle connections. Every adapter client must be
// closed exactly once at shutdown by the owner that constructed it.
func (c *Client) Close() {
	c.hc.CloseIdleConnections()
}

// TextResult wraps a tool result value as JSON text content for the MCP host.
func TextResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil
}
