package skins

import (
	"errors"

	"skinvault/internal/ddragon"
	"skinvault/internal/lcu"
)

// Reason strings reported alongside a failed run
const (
	ReasonNotRunning      = "LEAGUE_NOT_RUNNING"
	ReasonRequestFailed   = "LCU_REQUEST_FAILED"
	ReasonTimeout         = "LCU_TIMEOUT"
	ReasonUnexpected      = "UNEXPECTED_RESPONSE"
	ReasonReferenceFailed = "REFERENCE_FETCH_FAILED"
	ReasonUnknown         = "UNKNOWN"
)

// Reason maps a run failure to its machine-readable reason
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lcu.ErrCredentialsNotFound):
		return ReasonNotRunning
	case errors.Is(err, lcu.ErrRequestTimeout):
		return ReasonTimeout
	case errors.Is(err, lcu.ErrRequestFailed):
		return ReasonRequestFailed
	case errors.Is(err, lcu.ErrUnexpectedShape):
		return ReasonUnexpected
	case errors.Is(err, ddragon.ErrReferenceFetch):
		return ReasonReferenceFailed
	default:
		return ReasonUnknown
	}
}
