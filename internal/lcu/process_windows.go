//go:build windows

package lcu

import (
	"context"
	"strings"

	"skinvault/internal/constants"
)

// ExecutablePath uses Get-Process, which works without admin rights
func (s *ShellInspector) ExecutablePath(ctx context.Context) (string, error) {
	return s.run(ctx, constants.ProcessQueryTimeout, "powershell", "-NoProfile", "-NonInteractive", "-Command",
		"(Get-Process -Name '"+constants.ClientProcess+"' -ErrorAction SilentlyContinue | Select-Object -First 1).Path")
}

// CommandLine queries Win32_Process through WMI
func (s *ShellInspector) CommandLine(ctx context.Context) (string, error) {
	return s.run(ctx, constants.ProcessQueryTimeout, "powershell", "-NoProfile", "-NonInteractive", "-Command",
		`(Get-WmiObject Win32_Process -Filter "name='`+constants.ClientProcessExe+`'" | Select-Object -First 1).CommandLine`)
}

// LegacyCommandLine uses wmic, which is deprecated and missing on newer Windows builds
func (s *ShellInspector) LegacyCommandLine(ctx context.Context) (string, error) {
	out, err := s.run(ctx, constants.LegacyQueryTimeout, "wmic", "PROCESS", "WHERE",
		"name='"+constants.ClientProcessExe+"'", "GET", "commandline", "/FORMAT:csv")
	if err != nil {
		return "", err
	}
	if !strings.Contains(out, "--") {
		return "", ErrProcessNotFound
	}
	return out, nil
}
