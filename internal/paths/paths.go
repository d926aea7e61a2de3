// Package paths locates the frontdesk configuration and data directories.
//
// Each directory resolves from the most specific source that is set: a
// command-line flag, then config.yaml (data only), then an environment
// variable, then the per-user platform default. Resolved paths are absolute.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user platform directories.
const AppName = "frontdesk"

// Environment variables that override the platform defaults.
const (
	EnvConfigDir = "FRONTDESK_CONFIG_DIR"
	EnvDataDir   = "FRONTDESK_DATA_DIR"
)

// Files inside the configuration directory.
const (
	ConfigFileName = "config.yaml"
	PagesFileName  = "pages.yaml"
)

// Dirs is a resolved pair of directories.
type Dirs struct {
	Config string
	Data   string
}

// ConfigFile returns the path of config.yaml.
func (d Dirs) ConfigFile() string { return filepath.Join(d.Config, ConfigFileName) }

// PagesFile returns the path of the page overrides file.
func (d Dirs) PagesFile() string { return filepath.Join(d.Config, PagesFileName) }

// platform holds the lookups that tests replace.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/frontdesk (fallback ~/.config/frontdesk)
// macOS:   ~/Library/Application Support/frontdesk
// Windows: %APPDATA%/frontdesk
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-user data directory. Outside Linux it is
// the configuration directory.
//
// Linux:   $XDG_DATA_HOME/frontdesk (fallback ~/.local/share/frontdesk)
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

func userDir(xdgEnv string, homeRel ...string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, homeRel...), AppName)...), nil
}

// ResolveConfigDir returns flag, else $FRONTDESK_CONFIG_DIR, else
// DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns flag, else the data_dir value of config.yaml, else
// $FRONTDESK_DATA_DIR, else DefaultDataDir.
func ResolveDataDir(flag, configured string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configured, os.Getenv(EnvDataDir))
}

func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
