//go:build !windows

package lcu

import (
	"context"
	"path/filepath"
	"strings"

	"skinvault/internal/constants"
)

// ExecutablePath scans ps output for the client binary
func (s *ShellInspector) ExecutablePath(ctx context.Context) (string, error) {
	out, err := s.run(ctx, constants.ProcessQueryTimeout, "ps", "-A", "-ww", "-o", "comm=")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, constants.ClientProcess) && filepath.IsAbs(line) {
			return line, nil
		}
	}
	return "", ErrProcessNotFound
}

// CommandLine returns the first ps entry mentioning the client process
func (s *ShellInspector) CommandLine(ctx context.Context) (string, error) {
	out, err := s.run(ctx, constants.ProcessQueryTimeout, "ps", "-A", "-ww", "-o", "args=")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, constants.ClientProcess) {
			return strings.TrimSpace(line), nil
		}
	}
	return "", ErrProcessNotFound
}

func (s *ShellInspector) LegacyCommandLine(ctx context.Context) (string, error) {
	return "", ErrUnsupported
}
