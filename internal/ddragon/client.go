// Package ddragon resolves the current Data Dragon version and the champion key -> name table.
// Both are cached for the life of the process until Reset.
package ddragon

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"skinvault/internal/cdn"
	"skinvault/internal/constants"
)

const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

var ErrReferenceFetch = errors.New("reference data fetch failed")

// Champion holds champion display data keyed by its numeric key
type Champion struct {
	Key  int    `json:"key"`
	ID   string `json:"id"`   // Icon/asset ID (e.g., "MonkeyKing")
	Name string `json:"name"` // Display name (e.g., "Wukong")
}

// championData is one entry of champion.json
type championData struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Client fetches and memoizes Data Dragon reference data
type Client struct {
	baseURL string
	locale  string
	cdn     *cdn.Client
	group   singleflight.Group

	mu        sync.RWMutex
	gen       uint64
	version   string
	champions map[int]Champion
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	baseURL string
	locale  string
	timeout time.Duration
}

// WithBaseURL points the client at a different Data Dragon host
func WithBaseURL(url string) Option {
	return func(o *clientOptions) { o.baseURL = url }
}

// WithLocale selects the champion.json locale
func WithLocale(locale string) Option {
	return func(o *clientOptions) { o.locale = locale }
}

// WithTimeout bounds each fetch
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// NewClient creates a new Data Dragon client
func NewClient(opts ...Option) *Client {
	o := clientOptions{baseURL: DefaultBaseURL, locale: "en_US", timeout: constants.ReferenceTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		baseURL: o.baseURL,
		locale:  o.locale,
		cdn:     cdn.New(o.timeout),
	}
}

// Version returns the latest Data Dragon version
func (c *Client) Version(ctx context.Context) (string, error) {
	c.mu.RLock()
	version, gen := c.version, c.gen
	c.mu.RUnlock()
	if version != "" {
		return version, nil
	}

	// Callers after a Reset get their own flight; the fetch outlives any one caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(flightKey("version", gen), func() (interface{}, error) {
		versions, err := cdn.GetJSON[[]string](fetchCtx, c.cdn, c.baseURL+"/api/versions.json")
		if err != nil {
			return "", fmt.Errorf("%w: versions: %v", ErrReferenceFetch, err)
		}
		if len(*versions) == 0 || (*versions)[0] == "" {
			return "", fmt.Errorf("%w: no versions available", ErrReferenceFetch)
		}

		latest := (*versions)[0]
		c.mu.Lock()
		if c.gen == gen {
			c.version = latest
		}
		c.mu.Unlock()
		return latest, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Champions returns numeric key -> Champion for the current version. The map is shared; don't modify it.
func (c *Client) Champions(ctx context.Context) (map[int]Champion, error) {
	c.mu.RLock()
	champions, gen := c.champions, c.gen
	c.mu.RUnlock()
	if champions != nil {
		return champions, nil
	}

	version, err := c.Version(ctx)
	if err != nil {
		return nil, err
	}

	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(flightKey("champions/"+version, gen), func() (interface{}, error) {
		url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.baseURL, version, c.locale)
		champData, err := cdn.GetJSON[struct {
			Data map[string]championData `json:"data"`
		}](fetchCtx, c.cdn, url)
		if err != nil {
			return nil, fmt.Errorf("%w: champions: %v", ErrReferenceFetch, err)
		}

		// Build key -> Champion map
		result := make(map[int]Champion, len(champData.Data))
		for id, champ := range champData.Data {
			key, err := strconv.Atoi(champ.Key)
			if err != nil {
				continue
			}
			if champ.ID == "" {
				champ.ID = id
			}
			result[key] = Champion{Key: key, ID: champ.ID, Name: champ.Name}
		}

		c.mu.Lock()
		if c.gen == gen {
			c.champions = result
		}
		c.mu.Unlock()
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int]Champion), nil
}

// Reset drops the cached version and champion table. In-flight fetches started before Reset don't repopulate it.
func (c *Client) Reset() {
	c.mu.Lock()
	c.gen++
	c.version = ""
	c.champions = nil
	c.mu.Unlock()
}

func flightKey(name string, gen uint64) string {
	return name + "/" + strconv.FormatUint(gen, 10)
}
