// Package cdn fetches public static JSON and HTML (Data Dragon, CommunityDragon, the wiki) over fasthttp.
package cdn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var ErrStatus = errors.New("unexpected status")

// Client is a thin unauthenticated GET client. It never retries.
type Client struct {
	client  *fasthttp.Client
	timeout time.Duration
}

// New creates a client whose requests are bounded by timeout
func New(timeout time.Duration) *Client {
	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
			// Some CDN payloads (champion.json, skins.json) are several MB
			MaxResponseBodySize: 64 << 20,
		},
		timeout: timeout,
	}
}

// Get returns the body of a 200 response
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", userAgent)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("GET %s: %w %d", url, ErrStatus, resp.StatusCode())
	}

	// resp is returned to the pool on exit
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

// GetJSON fetches url and decodes its JSON body into a T
func GetJSON[T any](ctx context.Context, c *Client, url string) (*T, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GET %s: invalid JSON: %w", url, err)
	}
	return &result, nil
}
