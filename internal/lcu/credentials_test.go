package lcu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestParseLockfileContent_Valid tests the standard five-field lockfile
func TestParseLockfileContent_Valid(t *testing.T) {
	creds, err := ParseLockfileContent("League of Legends:1234:2999:abc123:https")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := Credentials{ProcessName: "League of Legends", PID: 1234, Port: 2999, Password: "abc123", Protocol: "https"}
	if *creds != want {
		t.Errorf("Expected %+v, got %+v", want, *creds)
	}
}

// TestParseLockfileContent_ExtraFieldsAndWhitespace tests that trailing newlines and extra fields are tolerated
func TestParseLockfileContent_ExtraFieldsAndWhitespace(t *testing.T) {
	creds, err := ParseLockfileContent("LeagueClient:42:51234:tok-en:https:extra\r\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if creds.Port != 51234 || creds.Password != "tok-en" || creds.Protocol != "https" {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
}

// TestParseLockfileContent_Malformed tests that bad lines are rejected
func TestParseLockfileContent_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few fields":   "LeagueClient:1234:2999:abc",
		"non-numeric pid":  "LeagueClient:abc:2999:pw:https",
		"non-numeric port": "LeagueClient:1234:port:pw:https",
		"zero port":        "LeagueClient:1234:0:pw:https",
		"empty password":   "LeagueClient:1234:2999::https",
		"empty":            "",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLockfileContent(content)
			if !errors.Is(err, ErrInvalidLockfile) {
				t.Errorf("Expected ErrInvalidLockfile, got: %v", err)
			}
		})
	}
}

// TestParseLockfile_ReadsFile tests parsing straight from disk
func TestParseLockfile_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockfile")
	if err := os.WriteFile(path, []byte("LeagueClient:9:4444:secret:https"), 0o644); err != nil {
		t.Fatal(err)
	}

	creds, err := ParseLockfile(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if creds.Port != 4444 || creds.PID != 9 {
		t.Errorf("Unexpected credentials: %+v", creds)
	}

	if _, err := ParseLockfile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestParseCommandLine tests flag extraction from the client's command line
func TestParseCommandLine(t *testing.T) {
	cmdline := `"C:/Riot Games/League of Legends/LeagueClientUx.exe" "--riotclient-auth-token=xyz" "--app-port=61234" "--remoting-auth-token=Ab_c-9Z" "--install-directory=C:/Riot Games/League of Legends"`

	creds, ok := ParseCommandLine(cmdline)
	if !ok {
		t.Fatal("Expected credentials from command line")
	}
	if creds.Port != 61234 || creds.Password != "Ab_c-9Z" {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
	if creds.PID != 0 || creds.Protocol != "https" || creds.ProcessName != "LeagueClientUx" {
		t.Errorf("Expected synthesized defaults, got %+v", creds)
	}

	if _, ok := ParseCommandLine(`LeagueClientUx.exe --app-port=61234`); ok {
		t.Error("Expected no credentials without auth token")
	}
}

// TestInstallDirectory tests quoted and unquoted install directory flags
func TestInstallDirectory(t *testing.T) {
	cases := []struct {
		cmdline string
		want    string
		ok      bool
	}{
		{`x.exe "--install-directory=C:/Riot Games/League of Legends" --foo`, "C:/Riot Games/League of Legends", true},
		{`x.exe --install-directory=D:/LoL --foo`, "D:/LoL", true},
		{`x.exe --foo`, "", false},
	}
	for _, tc := range cases {
		got, ok := InstallDirectory(tc.cmdline)
		if ok != tc.ok || got != tc.want {
			t.Errorf("InstallDirectory(%q) = %q, %v; want %q, %v", tc.cmdline, got, ok, tc.want, tc.ok)
		}
	}
}

// TestMaskedPassword tests that only the edges of the password are shown
func TestMaskedPassword(t *testing.T) {
	c := &Credentials{Password: "abcdefgh"}
	if got := c.MaskedPassword(); got != "ab****gh" {
		t.Errorf("Expected ab****gh, got %q", got)
	}
	c.Password = "abc"
	if got := c.MaskedPassword(); got != "***" {
		t.Errorf("Expected ***, got %q", got)
	}
}
