package lcu

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"skinvault/internal/constants"
)

var (
	ErrRequestFailed   = errors.New("league client request failed")
	ErrRequestTimeout  = fmt.Errorf("%w: timed out", ErrRequestFailed)
	ErrUnexpectedShape = errors.New("unexpected response shape from league client")
)

// Client issues authenticated GET requests against one League Client session
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	authHeader string
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit caps requests per second; zero or less leaves requests unthrottled
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a new LCU client for the given credentials
func NewClient(creds *Credentials, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // LCU uses self-signed cert
				},
			},
			Timeout: constants.LocalServiceTimeout,
		},
		baseURL:    fmt.Sprintf("https://127.0.0.1:%d", creds.Port),
		authHeader: "Basic " + basicAuth(constants.AuthUser, creds.Password),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a raw LCU response body
type Response struct {
	StatusCode int
	Body       []byte
}

// IsJSON reports whether the body parses as JSON
func (r *Response) IsJSON() bool {
	return json.Valid(r.Body)
}

// Value returns the decoded JSON body, or the raw text when it is not JSON
func (r *Response) Value() any {
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return string(r.Body)
	}
	return v
}

// Decode unmarshals the body into v, reporting any mismatch as ErrUnexpectedShape
func (r *Response) Decode(v any) error {
	if r.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d: %s", ErrUnexpectedShape, r.StatusCode, truncate(r.Body, 120))
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

// Request performs a GET to the LCU API and returns the body whatever its status
func (c *Client) Request(ctx context.Context, path string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: GET %s", ErrRequestTimeout, path)
		}
		return nil, fmt.Errorf("%w: GET %s: %v", ErrRequestFailed, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: reading %s", ErrRequestTimeout, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrRequestFailed, path, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// GetJSON performs a GET and decodes the JSON body into v
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Request(ctx, path)
	if err != nil {
		return err
	}
	if err := resp.Decode(v); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func basicAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
