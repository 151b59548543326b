// Package apiclient is a typed client for the identity platform's admin REST
// API. Every resource is declared as a static table of operations and driven
// by a single executor (see operation.go).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
)

// DefaultTimeout bounds every request unless WithHTTPClient overrides it.
const DefaultTimeout = 30 * time.Second

// Metrics observes completed requests. A nil Metrics is valid.
type Metrics interface {
	ObserveRequest(resource, operation string, status int, duration time.Duration)
}

// Client is the admin API client. It is safe for concurrent use once built;
// the With* methods return modified copies.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	realm      string
	metrics    Metrics
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *Client) clone() *Client {
	cp := *c
	return &cp
}

// WithToken returns a copy of the client that sends the bearer token.
func (c *Client) WithToken(token string) *Client {
	cp := c.clone()
	cp.token = token
	return cp
}

// WithRealm returns a copy of the client scoped to realm. Realm-scoped
// resources read their {realm} placeholder from here.
func (c *Client) WithRealm(realm string) *Client {
	cp := c.clone()
	cp.realm = realm
	return cp
}

// WithHTTPClient returns a copy that uses hc for transport.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := c.clone()
	cp.httpClient = hc
	return cp
}

// WithMetrics returns a copy that reports request metrics to m.
func (c *Client) WithMetrics(m Metrics) *Client {
	cp := c.clone()
	cp.metrics = m
	return cp
}

// SetToken sets the authentication token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Realm returns the realm the client is scoped to.
func (c *Client) Realm() string {
	return c.realm
}

// BaseURL returns the server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type response struct {
	status int
	header http.Header
}

// do performs one HTTP request. result is decoded from a 2xx body when
// non-nil; non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, result any) (*response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanAdminRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	logger.DebugCtx(ctx, "admin api request",
		logger.Method(method),
		logger.Path(path),
		logger.Status(resp.StatusCode),
		logger.DurationMs(logger.Since(start)),
	)

	out := &response{status: resp.StatusCode, header: resp.Header}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, respBody)
		telemetry.RecordError(ctx, apiErr)
		return out, apiErr
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return out, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return out, nil
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	if json.Unmarshal(body, apiErr) != nil || (apiErr.Message == "" && apiErr.Code == "" && apiErr.Details == "") {
		apiErr = &APIError{Message: strings.TrimSpace(string(body))}
	}
	apiErr.StatusCode = status
	apiErr.Body = body
	return apiErr
}
