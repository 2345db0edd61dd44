package lcu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	ErrProcessNotFound = errors.New("league client process not found")
	ErrUnsupported     = errors.New("process query not supported on this platform")
)

// ProcessInspector queries the OS about the running LeagueClientUx process
type ProcessInspector interface {
	// ExecutablePath returns the full path of the client executable
	ExecutablePath(ctx context.Context) (string, error)
	// CommandLine returns the client's full command line
	CommandLine(ctx context.Context) (string, error)
	// LegacyCommandLine is CommandLine through an older, less reliable query
	LegacyCommandLine(ctx context.Context) (string, error)
}

// ShellInspector implements ProcessInspector by shelling out to platform tools
type ShellInspector struct {
	run func(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error)
}

// NewShellInspector creates an inspector for the current platform
func NewShellInspector() *ShellInspector {
	return &ShellInspector{run: runCommand}
}

func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", ErrProcessNotFound
	}
	return out, nil
}
