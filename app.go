package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"skinvault/internal/lcu"
	"skinvault/internal/skins"
	"skinvault/internal/wiki"
)

const (
	notRunningMessage = "Please open the League of Legends client and log in, then try again."
	reasonNoCache     = "NO_CACHED_RESULT"
)

// Response is what callers receive for a skins request
type Response struct {
	Success bool          `json:"success"`
	Data    *skins.Result `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
	Reason  string        `json:"reason,omitempty"`
}

// App struct
type App struct {
	locator  *lcu.Locator
	pipeline *skins.Pipeline
	scraper  *wiki.Scraper
	logger   zerolog.Logger

	mu   sync.Mutex
	gen  uint64
	last *skins.Result
}

// NewApp creates a new App application struct
func NewApp(locator *lcu.Locator, pipeline *skins.Pipeline, scraper *wiki.Scraper, logger zerolog.Logger) *App {
	return &App{
		locator:  locator,
		pipeline: pipeline,
		scraper:  scraper,
		logger:   logger,
	}
}

// GetSkins locates the client and builds the catalogue, remembering it on success
func (a *App) GetSkins(ctx context.Context) Response {
	return a.load(ctx, false)
}

// RefreshSkins drops every cache and builds again
func (a *App) RefreshSkins(ctx context.Context) Response {
	return a.load(ctx, true)
}

// GetCachedSkins returns the last successful result without any I/O
func (a *App) GetCachedSkins() Response {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return Response{Success: false, Error: "No skins loaded yet", Reason: reasonNoCache}
	}
	return Response{Success: true, Data: a.last}
}

// load runs one build. A run started before a later refresh may still return to its caller,
// but it never replaces the cached result.
func (a *App) load(ctx context.Context, refresh bool) Response {
	a.mu.Lock()
	if refresh {
		a.gen++
		a.last = nil
	}
	gen := a.gen
	a.mu.Unlock()

	creds, err := a.locator.Locate(ctx)
	if err != nil {
		return a.failure(err)
	}

	var result *skins.Result
	if refresh {
		result, err = a.pipeline.Refresh(ctx, creds)
	} else {
		result, err = a.pipeline.Build(ctx, creds)
	}
	if err != nil {
		return a.failure(err)
	}

	a.mu.Lock()
	if a.gen == gen {
		a.last = result
	} else {
		a.logger.Debug().Msg("discarding result of superseded run")
	}
	a.mu.Unlock()

	return Response{Success: true, Data: result}
}

func (a *App) failure(err error) Response {
	reason := skins.Reason(err)
	if reason == skins.ReasonNotRunning {
		a.logger.Info().Msg("League client not found")
		return Response{Success: false, Error: notRunningMessage, Reason: reason}
	}
	a.logger.Error().Err(err).Str("reason", reason).Msg("failed to load skins")
	return Response{Success: false, Error: "Failed to load skins: " + err.Error(), Reason: reason}
}

// Locate returns the current client credentials
func (a *App) Locate(ctx context.Context) (*lcu.Credentials, error) {
	return a.locator.Locate(ctx)
}

// Prices scrapes the wiki skin price list
func (a *App) Prices(ctx context.Context) (map[string]string, error) {
	return a.scraper.Prices(ctx)
}
