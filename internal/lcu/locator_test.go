package lcu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// stubInspector records which queries ran
type stubInspector struct {
	exePath, cmdline, legacy string
	exeCalls, cmdCalls       int
	legacyCalls              int
}

func (s *stubInspector) ExecutablePath(ctx context.Context) (string, error) {
	s.exeCalls++
	if s.exePath == "" {
		return "", ErrProcessNotFound
	}
	return s.exePath, nil
}

func (s *stubInspector) CommandLine(ctx context.Context) (string, error) {
	s.cmdCalls++
	if s.cmdline == "" {
		return "", ErrProcessNotFound
	}
	return s.cmdline, nil
}

func (s *stubInspector) LegacyCommandLine(ctx context.Context) (string, error) {
	s.legacyCalls++
	if s.legacy == "" {
		return "", ErrUnsupported
	}
	return s.legacy, nil
}

func writeLockfile(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "lockfile")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLocate_ProbedPath tests that a lockfile at a probed path wins
func TestLocate_ProbedPath(t *testing.T) {
	root := t.TempDir()
	bad := writeLockfile(t, filepath.Join(root, "bad"), "garbage")
	good := writeLockfile(t, filepath.Join(root, "good"), "League of Legends:1234:2999:abc123:https")
	inspector := &stubInspector{cmdline: "--app-port=1 --remoting-auth-token=zzz"}

	candidates := []string{filepath.Join(root, "missing", "lockfile"), bad, good}
	locator := NewLocator(zerolog.Nop(), DefaultStrategies(candidates, inspector)...)

	creds, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("Expected credentials, got: %v", err)
	}
	want := Credentials{ProcessName: "League of Legends", PID: 1234, Port: 2999, Password: "abc123", Protocol: "https"}
	if *creds != want {
		t.Errorf("Expected %+v, got %+v", want, *creds)
	}
	if inspector.exeCalls+inspector.cmdCalls+inspector.legacyCalls != 0 {
		t.Error("Expected no process queries once a lockfile is found")
	}
}

// TestLocate_ProcessPath tests deriving the lockfile from the executable path
func TestLocate_ProcessPath(t *testing.T) {
	dir := t.TempDir()
	writeLockfile(t, dir, "LeagueClient:77:5555:pw:https")
	inspector := &stubInspector{exePath: filepath.Join(dir, "LeagueClientUx.exe")}

	locator := NewLocator(zerolog.Nop(), DefaultStrategies(nil, inspector)...)
	creds, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("Expected credentials, got: %v", err)
	}
	if creds.Port != 5555 || creds.PID != 77 {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
	if inspector.cmdCalls != 0 {
		t.Error("Expected command line not to be queried")
	}
}

// TestLocate_CommandLineStopsChain tests that command-line flags short-circuit the later strategies
func TestLocate_CommandLineStopsChain(t *testing.T) {
	inspector := &stubInspector{
		cmdline: `LeagueClientUx.exe --app-port=61000 --remoting-auth-token=tok-1 --install-directory=/nowhere`,
		legacy:  `--app-port=1 --remoting-auth-token=legacy`,
	}

	locator := NewLocator(zerolog.Nop(), DefaultStrategies([]string{filepath.Join(t.TempDir(), "lockfile")}, inspector)...)
	creds, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("Expected credentials, got: %v", err)
	}
	if creds.Port != 61000 || creds.Password != "tok-1" || creds.PID != 0 {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
	if inspector.cmdCalls != 1 {
		t.Errorf("Expected exactly one command-line query, got %d", inspector.cmdCalls)
	}
	if inspector.legacyCalls != 0 {
		t.Error("Expected legacy query not to run")
	}
}

// TestLocate_InstallDirFallback tests the install-directory fallback when flags are missing
func TestLocate_InstallDirFallback(t *testing.T) {
	dir := t.TempDir()
	writeLockfile(t, dir, "LeagueClient:3:6000:fromdir:https")
	inspector := &stubInspector{cmdline: `LeagueClientUx.exe "--install-directory=` + dir + `"`}

	locator := NewLocator(zerolog.Nop(), DefaultStrategies(nil, inspector)...)
	creds, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("Expected credentials, got: %v", err)
	}
	if creds.Password != "fromdir" {
		t.Errorf("Expected lockfile from install dir, got %+v", creds)
	}
	if inspector.legacyCalls != 0 {
		t.Error("Expected legacy query not to run")
	}
}

// TestLocate_LegacyQuery tests the last-resort legacy query
func TestLocate_LegacyQuery(t *testing.T) {
	inspector := &stubInspector{legacy: "Node,CommandLine\nPC,LeagueClientUx.exe --app-port=7000 --remoting-auth-token=old"}

	locator := NewLocator(zerolog.Nop(), DefaultStrategies(nil, inspector)...)
	creds, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("Expected credentials, got: %v", err)
	}
	if creds.Port != 7000 || creds.Password != "old" {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
}

// TestLocate_AllStrategiesFail tests the distinguished not-found outcome
func TestLocate_AllStrategiesFail(t *testing.T) {
	inspector := &stubInspector{}
	locator := NewLocator(zerolog.Nop(), DefaultStrategies([]string{filepath.Join(t.TempDir(), "lockfile")}, inspector)...)

	_, err := locator.Locate(context.Background())
	if !errors.Is(err, ErrCredentialsNotFound) {
		t.Fatalf("Expected ErrCredentialsNotFound, got: %v", err)
	}
	if inspector.exeCalls != 1 || inspector.cmdCalls != 2 || inspector.legacyCalls != 1 {
		t.Errorf("Expected every strategy to run, got exe=%d cmd=%d legacy=%d",
			inspector.exeCalls, inspector.cmdCalls, inspector.legacyCalls)
	}
}

// TestLocate_OrderIsStrict tests that a stubbed chain is tried in order and stops at the first hit
func TestLocate_OrderIsStrict(t *testing.T) {
	var order []string
	miss := func(name string) Strategy {
		return Strategy{Name: name, Find: func(ctx context.Context) (*Credentials, error) {
			order = append(order, name)
			return nil, errors.New("miss")
		}}
	}
	hit := Strategy{Name: "hit", Find: func(ctx context.Context) (*Credentials, error) {
		order = append(order, "hit")
		return &Credentials{Port: 1, Password: "x"}, nil
	}}

	locator := NewLocator(zerolog.Nop(), miss("a"), miss("b"), hit, miss("c"))
	if _, err := locator.Locate(context.Background()); err != nil {
		t.Fatalf("Expected credentials, got: %v", err)
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "hit" {
		t.Errorf("Unexpected strategy order: %v", order)
	}
}

// TestDefaultCandidates tests the drive x install-dir cross product
func TestDefaultCandidates(t *testing.T) {
	paths := DefaultCandidates([]string{"extra"})
	if len(paths) != 1+len(DriveLetters)*len(InstallSubdirs) {
		t.Fatalf("Unexpected candidate count: %d", len(paths))
	}
	if paths[0] != filepath.Join("extra", "lockfile") {
		t.Errorf("Expected extra dir first, got %q", paths[0])
	}
	if paths[1] != `C:\Riot Games\League of Legends\lockfile` {
		t.Errorf("Unexpected first default path: %q", paths[1])
	}
}
