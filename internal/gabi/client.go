// Package gabi implements the HTTP client for a remote gabi-style SQL query
// service. It covers the two calls the CLI makes: a healthcheck probe and a
// query submission, both authenticated with a bearer token.
package gabi

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

// DefaultTimeout bounds each HTTP request when no explicit timeout is given.
const DefaultTimeout = 30 * time.Second

// StatusError is returned when the service answers with a non-success HTTP
// status. The response body is carried verbatim so server-side detail is
// never lost.
type StatusError struct {
	Code   int
	Reason string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Code, e.Reason, e.Body)
}

// Client talks to one gabi service instance.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a client for the service at baseURL authenticating with token.
// A non-positive timeout falls back to DefaultTimeout.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ping checks service liveness via GET /healthcheck. A reachable service that
// reports any status other than "OK" is still an error.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthcheck", nil)
	if err != nil {
		return err
	}
	c.setStandardHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode healthcheck response: %w", err)
	}
	if health.Status != "OK" {
		return fmt.Errorf("service reported status %q", health.Status)
	}
	return nil
}

// Query submits sql via POST /query and returns the decoded response. The
// service's own error channel is checked after the HTTP status: a success
// status with a non-empty error field is still a failure, and the service's
// message wins.
func (c *Client) Query(ctx context.Context, sql string) (*QueryResponse, error) {
	body, err := json.Marshal(QueryRequest{Query: sql})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%s", out.Error)
	}
	return &out, nil
}

func (c *Client) setStandardHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
}

// checkStatus turns a non-2xx response into a StatusError carrying the status
// code, reason phrase, and body verbatim.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(resp.Body)
	return &StatusError{
		Code:   resp.StatusCode,
		Reason: http.StatusText(resp.StatusCode),
		Body:   strings.TrimSpace(string(b)),
	}
}
