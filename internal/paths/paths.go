// Package paths decides where apptbook keeps its configuration and its
// appointment data. Every location goes through a precedence chain so a
// flag, a config.yaml value, or an environment variable can override
// the platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Directory names created relative to the working directory when no
// override is active.
const (
	DefaultConfigDirName = ".apptbook"
	DefaultDataDirName   = ".apptbook-db"
)

// Environment variables that override the directory defaults.
const (
	EnvConfigDir = "APPTBOOK_CONFIG_DIR"
	EnvDataDir   = "APPTBOOK_DATA_DIR"
)

// platformDir indirects the os lookups so tests can substitute canned
// or failing implementations.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir picks the configuration directory for the current
// platform:
//
//	Linux:   $XDG_CONFIG_HOME/apptbook (fallback ~/.config/apptbook)
//	macOS:   ~/Library/Application Support/apptbook
//	Windows: %APPDATA%/apptbook
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "apptbook"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "apptbook"), nil
	default:
		// os.UserConfigDir already yields ~/Library/Application Support
		// on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "apptbook"), nil
	}
}

// ResolveConfigDir applies the override chain for the configuration
// directory: an explicit flag wins, then APPTBOOK_CONFIG_DIR, then the
// platform default. Relative overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies the override chain for the data directory:
// flag, then the data_dir value from config.yaml, then
// APPTBOOK_DATA_DIR, then $(CWD)/.apptbook-db. Defaulting to the
// working directory keeps a calendar local to its checkout until the
// user opts into a shared location.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
