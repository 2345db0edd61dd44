package lcu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"skinvault/internal/constants"
)

// DriveLetters and InstallSubdirs form the cross product probed for a lockfile
var (
	DriveLetters   = []string{"C", "D", "E", "F", "G"}
	InstallSubdirs = []string{
		`Riot Games\League of Legends`,
		`Games\Riot Games\League of Legends`,
		`Program Files\Riot Games\League of Legends`,
		`Program Files (x86)\Riot Games\League of Legends`,
	}
)

// DefaultCandidates returns every drive/install-dir lockfile path, with extra install dirs first
func DefaultCandidates(extraDirs []string) []string {
	paths := make([]string, 0, len(extraDirs)+len(DriveLetters)*len(InstallSubdirs))
	for _, dir := range extraDirs {
		paths = append(paths, filepath.Join(dir, constants.LockfileName))
	}
	for _, drive := range DriveLetters {
		for _, sub := range InstallSubdirs {
			paths = append(paths, fmt.Sprintf(`%s:\%s\%s`, drive, sub, constants.LockfileName))
		}
	}
	return paths
}

// Strategy is one way of discovering credentials. Find reports a miss as an error; it must not panic.
type Strategy struct {
	Name string
	Find func(ctx context.Context) (*Credentials, error)
}

// Locator tries strategies in priority order and stops at the first success
type Locator struct {
	strategies []Strategy
	logger     zerolog.Logger
}

// NewLocator creates a locator over the given ordered strategies
func NewLocator(logger zerolog.Logger, strategies ...Strategy) *Locator {
	return &Locator{strategies: strategies, logger: logger}
}

// NewDefaultLocator wires the five built-in strategies: path probing, process path,
// command-line flags, command-line install dir, and the legacy command-line query.
func NewDefaultLocator(logger zerolog.Logger, extraDirs []string, inspector ProcessInspector) *Locator {
	return NewLocator(logger, DefaultStrategies(DefaultCandidates(extraDirs), inspector)...)
}

// DefaultStrategies returns the built-in discovery chain in priority order
func DefaultStrategies(candidates []string, inspector ProcessInspector) []Strategy {
	strategies := []Strategy{ProbePaths(candidates)}
	if inspector == nil {
		return strategies
	}
	return append(strategies,
		ProcessPath(inspector),
		CommandLineFlags("command-line", inspector.CommandLine),
		CommandLineInstallDir(inspector),
		CommandLineFlags("legacy-command-line", inspector.LegacyCommandLine),
	)
}

// Locate returns the first credentials any strategy yields, or ErrCredentialsNotFound
func (l *Locator) Locate(ctx context.Context) (*Credentials, error) {
	for _, s := range l.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		creds, err := s.Find(ctx)
		if err != nil {
			l.logger.Debug().Str("strategy", s.Name).Err(err).Msg("credential strategy missed")
			continue
		}
		if creds == nil {
			continue
		}

		l.logger.Info().Str("strategy", s.Name).Int("port", creds.Port).Msg("found league client credentials")
		return creds, nil
	}
	return nil, ErrCredentialsNotFound
}

// ProbePaths checks each candidate lockfile path; unreadable or malformed files fall through to the next
func ProbePaths(candidates []string) Strategy {
	return Strategy{
		Name: "lockfile-paths",
		Find: func(ctx context.Context) (*Credentials, error) {
			var lastErr error = ErrLockfileNotFound
			for _, path := range candidates {
				if _, err := os.Stat(path); err != nil {
					continue
				}
				creds, err := ParseLockfile(path)
				if err != nil {
					lastErr = fmt.Errorf("%s: %w", path, err)
					continue
				}
				return creds, nil
			}
			return nil, lastErr
		},
	}
}

// ProcessPath derives the install dir from the running client's executable path
func ProcessPath(inspector ProcessInspector) Strategy {
	return Strategy{
		Name: "process-path",
		Find: func(ctx context.Context) (*Credentials, error) {
			exe, err := inspector.ExecutablePath(ctx)
			if err != nil {
				return nil, err
			}
			return lockfileIn(filepath.Dir(exe))
		},
	}
}

// CommandLineFlags reads --app-port and --remoting-auth-token from a command-line query
func CommandLineFlags(name string, query func(ctx context.Context) (string, error)) Strategy {
	return Strategy{
		Name: name,
		Find: func(ctx context.Context) (*Credentials, error) {
			cmdline, err := query(ctx)
			if err != nil {
				return nil, err
			}
			creds, ok := ParseCommandLine(cmdline)
			if !ok {
				return nil, errors.New("port or auth token flag missing")
			}
			return creds, nil
		},
	}
}

// CommandLineInstallDir falls back to the --install-directory flag and reads the lockfile there
func CommandLineInstallDir(inspector ProcessInspector) Strategy {
	return Strategy{
		Name: "command-line-install-dir",
		Find: func(ctx context.Context) (*Credentials, error) {
			cmdline, err := inspector.CommandLine(ctx)
			if err != nil {
				return nil, err
			}
			dir, ok := InstallDirectory(cmdline)
			if !ok {
				return nil, errors.New("install directory flag missing")
			}
			return lockfileIn(dir)
		},
	}
}

func lockfileIn(dir string) (*Credentials, error) {
	path := filepath.Join(dir, constants.LockfileName)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w at %s", ErrLockfileNotFound, path)
	}
	return ParseLockfile(path)
}
