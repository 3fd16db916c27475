package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvPath names the environment variable that pins the config file.
const EnvPath = "PLEXDECK_CONFIG"

// ErrNotFound means no config file exists at any searched location.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns $XDG_CONFIG_HOME/plexdeck/config.toml, falling back
// to ~/.config. It is where plexdeckd writes a first-run config.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "plexdeck", "config.toml")
}

// SearchPaths lists the locations Discover tries, in order.
func SearchPaths() []string {
	return []string{
		"./config.toml",
		DefaultPath(),
		"/etc/plexdeck/config.toml",
	}
}

// Discover returns the config file to use. PLEXDECK_CONFIG wins and must
// exist; otherwise the first existing SearchPaths entry is returned, or an
// error wrapping ErrNotFound.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvPath); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvPath, envPath, err)
		}
		return envPath, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
