// Package rarity classifies skins into rarity tiers, preferring a community-maintained rarity map.
package rarity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"skinvault/internal/cdn"
	"skinvault/internal/constants"
)

const DefaultURL = "https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/v1/skins.json"

var ErrFetch = errors.New("rarity map fetch failed")

// Resolver fetches and caches the community rarity map (skin id -> tier)
type Resolver struct {
	url    string
	cdn    *cdn.Client
	logger zerolog.Logger
	group  singleflight.Group

	mu        sync.RWMutex
	gen       uint64
	community map[string]Tier
}

// Option configures a Resolver
type Option func(*resolverOptions)

type resolverOptions struct {
	url     string
	timeout time.Duration
}

// WithURL overrides the community map location
func WithURL(url string) Option {
	return func(o *resolverOptions) { o.url = url }
}

// WithTimeout bounds the map fetch
func WithTimeout(d time.Duration) Option {
	return func(o *resolverOptions) { o.timeout = d }
}

// NewResolver creates a resolver with an empty cache
func NewResolver(logger zerolog.Logger, opts ...Option) *Resolver {
	o := resolverOptions{url: DefaultURL, timeout: constants.ReferenceTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver{url: o.url, cdn: cdn.New(o.timeout), logger: logger}
}

// CommunityMap returns the cached map, fetching it on first use.
// Rarity is best-effort: a failed fetch yields an empty map and is retried on the next call.
func (r *Resolver) CommunityMap(ctx context.Context) map[string]Tier {
	community, err := r.Fetch(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("community rarity map unavailable, falling back to local hints")
		return map[string]Tier{}
	}
	return community
}

// Fetch returns the cached map or downloads it. The returned map is shared; don't modify it.
func (r *Resolver) Fetch(ctx context.Context) (map[string]Tier, error) {
	r.mu.RLock()
	community, gen := r.community, r.gen
	r.mu.RUnlock()
	if community != nil {
		return community, nil
	}

	// Callers after a Reset get their own flight; the fetch outlives any one caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do("community/"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		raw, err := cdn.GetJSON[map[string]json.RawMessage](fetchCtx, r.cdn, r.url)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}

		result := parseCommunity(*raw)
		r.mu.Lock()
		if r.gen == gen {
			r.community = result
		}
		r.mu.Unlock()

		r.logger.Debug().Int("skins", len(result)).Msg("loaded community rarity map")
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]Tier), nil
}

// Reset drops the cached map
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.gen++
	r.community = nil
	r.mu.Unlock()
}

// parseCommunity accepts values that are either a tier string or an object with a "rarity" field.
// "kNoRarity" entries carry no signal and are left out so the local hints still apply.
func parseCommunity(raw map[string]json.RawMessage) map[string]Tier {
	result := make(map[string]Tier, len(raw))
	for id, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			var obj struct {
				Rarity string `json:"rarity"`
			}
			if err := json.Unmarshal(value, &obj); err != nil {
				continue
			}
			s = obj.Rarity
		}
		if normalize(s) == "norarity" {
			continue
		}
		if tier, ok := ParseTier(s); ok {
			result[id] = tier
		}
	}
	return result
}
