package constants

import "time"

const (
	LocalServiceTimeout = 8 * time.Second
	ReferenceTimeout    = 10 * time.Second
	ProcessQueryTimeout = 8 * time.Second
	LegacyQueryTimeout  = 5 * time.Second
	WatchDebounce       = 750 * time.Millisecond
)

// ChromaConcurrency caps simultaneous per-champion detail requests against the local service.
const ChromaConcurrency = 20

const (
	LockfileName     = "lockfile"
	ClientProcess    = "LeagueClientUx"
	ClientProcessExe = "LeagueClientUx.exe"
	AuthUser         = "riot"
	DefaultProtocol  = "https"
)
