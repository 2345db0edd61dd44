package rarity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// TestCommunityMap_ParsesAndCaches tests both value shapes and that the map is fetched once
func TestCommunityMap_ParsesAndCaches(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{
			"1001": "legendary",
			"1002": {"id": 1002, "rarity": "kEpic", "isBase": false},
			"1003": {"rarity": "kSparkly"},
			"1004": 17
		}`))
	}))
	defer server.Close()

	resolver := NewResolver(zerolog.Nop(), WithURL(server.URL))
	ctx := context.Background()

	community := resolver.CommunityMap(ctx)
	if len(community) != 2 || community["1001"] != Legendary || community["1002"] != Epic {
		t.Errorf("Unexpected community map: %v", community)
	}

	resolver.CommunityMap(ctx)
	if hits.Load() != 1 {
		t.Errorf("Expected one fetch, got %d", hits.Load())
	}

	resolver.Reset()
	resolver.CommunityMap(ctx)
	if hits.Load() != 2 {
		t.Errorf("Expected refetch after reset, got %d", hits.Load())
	}
}

// TestCommunityMap_FailureIsEmpty tests that fetch failures degrade to an empty map and aren't cached
func TestCommunityMap_FailureIsEmpty(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	resolver := NewResolver(zerolog.Nop(), WithURL(server.URL))

	community := resolver.CommunityMap(context.Background())
	if community == nil || len(community) != 0 {
		t.Errorf("Expected empty non-nil map, got %v", community)
	}
	if _, err := resolver.Fetch(context.Background()); !errors.Is(err, ErrFetch) {
		t.Errorf("Expected ErrFetch, got: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("Expected failure not to be cached, got %d fetches", hits.Load())
	}
}

// TestFetch_ResetDuringFetch tests that a fetch started before Reset is neither shared with nor cached for later callers
func TestFetch_ResetDuringFetch(t *testing.T) {
	var hits atomic.Int32
	started, release := make(chan struct{}), make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
			<-release
			w.Write([]byte(`{"1001": "epic"}`))
			return
		}
		w.Write([]byte(`{"1001": "legendary"}`))
	}))
	defer server.Close()

	resolver := NewResolver(zerolog.Nop(), WithURL(server.URL))

	stale := make(chan map[string]Tier, 1)
	go func() { stale <- resolver.CommunityMap(context.Background()) }()
	<-started

	resolver.Reset()
	fresh, err := resolver.Fetch(context.Background())
	if err != nil {
		close(release)
		t.Fatalf("Unexpected error: %v", err)
	}
	if fresh["1001"] != Legendary || hits.Load() != 2 {
		t.Errorf("Expected a fresh fetch after reset, got %v after %d fetches", fresh, hits.Load())
	}

	close(release)
	if old := <-stale; old["1001"] != Epic {
		t.Errorf("Expected the older caller to get its own map, got %v", old)
	}
	if cached := resolver.CommunityMap(context.Background()); cached["1001"] != Legendary || hits.Load() != 2 {
		t.Errorf("Expected cache to keep the post-reset map, got %v after %d fetches", cached, hits.Load())
	}
}

// TestFetch_NoRarityEntriesSkipped tests that kNoRarity community entries leave the skin to the local hints
func TestFetch_NoRarityEntriesSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"1000": {"rarity": "kNoRarity"}, "1007": {"rarity": "kNoRarity"}, "1008": "kEpic"}`))
	}))
	defer server.Close()

	community := NewResolver(zerolog.Nop(), WithURL(server.URL)).CommunityMap(context.Background())
	if _, ok := community["1007"]; ok || len(community) != 1 {
		t.Errorf("Expected kNoRarity entries skipped, got %v", community)
	}
	if got := Classify(Hints{SkinID: 1007, Name: "Prestige Ashe"}, community); got != Mythic {
		t.Errorf("Expected name heuristic to apply, got %s", got)
	}
}
