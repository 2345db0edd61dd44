package lcu

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"skinvault/internal/constants"
)

var (
	ErrLockfileNotFound = errors.New("lockfile not found")
	ErrInvalidLockfile  = errors.New("invalid lockfile")

	// ErrCredentialsNotFound means every discovery strategy came up empty: the client is not running.
	ErrCredentialsNotFound = errors.New("league client credentials not found")
)

// Credentials holds the LCU connection details for one client session
type Credentials struct {
	ProcessName string `json:"name"`
	PID         int    `json:"processId"`
	Port        int    `json:"port"`
	Password    string `json:"-"`
	Protocol    string `json:"protocol"`
}

// MaskedPassword returns the password with everything but the first and last two characters hidden
func (c *Credentials) MaskedPassword() string {
	if len(c.Password) <= 4 {
		return strings.Repeat("*", len(c.Password))
	}
	return c.Password[:2] + strings.Repeat("*", len(c.Password)-4) + c.Password[len(c.Password)-2:]
}

// ParseLockfile reads and parses the lockfile content
func ParseLockfile(path string) (*Credentials, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return ParseLockfileContent(string(content))
}

// ParseLockfileContent parses "name:pid:port:password:protocol". Extra fields are ignored.
func ParseLockfileContent(content string) (*Credentials, error) {
	parts := strings.Split(strings.TrimSpace(content), ":")
	if len(parts) < 5 {
		return nil, fmt.Errorf("%w: expected 5 parts, got %d", ErrInvalidLockfile, len(parts))
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad pid %q", ErrInvalidLockfile, parts[1])
	}
	port, err := strconv.Atoi(parts[2])
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("%w: bad port %q", ErrInvalidLockfile, parts[2])
	}
	if parts[3] == "" {
		return nil, fmt.Errorf("%w: empty password", ErrInvalidLockfile)
	}

	return &Credentials{
		ProcessName: parts[0],
		PID:         pid,
		Port:        port,
		Password:    parts[3],
		Protocol:    parts[4],
	}, nil
}

var (
	portFlag    = regexp.MustCompile(`--app-port=(\d+)`)
	tokenFlag   = regexp.MustCompile(`--remoting-auth-token=([\w-]+)`)
	installFlag = regexp.MustCompile(`"--install-directory=([^"]+)"|--install-directory=([^\s"]+)`)
)

// ParseCommandLine extracts credentials from the client's --app-port and --remoting-auth-token flags
func ParseCommandLine(cmdline string) (*Credentials, bool) {
	portMatch := portFlag.FindStringSubmatch(cmdline)
	tokenMatch := tokenFlag.FindStringSubmatch(cmdline)
	if portMatch == nil || tokenMatch == nil {
		return nil, false
	}

	port, err := strconv.Atoi(portMatch[1])
	if err != nil || port <= 0 {
		return nil, false
	}

	return &Credentials{
		ProcessName: constants.ClientProcess,
		PID:         0,
		Port:        port,
		Password:    tokenMatch[1],
		Protocol:    constants.DefaultProtocol,
	}, true
}

// InstallDirectory extracts the --install-directory flag value, quoted or not
func InstallDirectory(cmdline string) (string, bool) {
	m := installFlag.FindStringSubmatch(cmdline)
	if m == nil {
		return "", false
	}
	dir := m[1]
	if dir == "" {
		dir = m[2]
	}
	dir = strings.Trim(dir, `"`)
	return dir, dir != ""
}
