// Package config resolves the Espanso match directory and persists small
// user preferences between sessions.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// MatchDir returns the match directory from the EZPANSO_MATCH_DIR env var,
// falling back to the platform's Espanso config location.
func MatchDir() string {
	if env := os.Getenv("EZPANSO_MATCH_DIR"); env != "" {
		return env
	}
	return DefaultMatchDir()
}

// DefaultMatchDir returns where Espanso keeps match files on this platform.
// xdg.ConfigHome resolves to ~/.config on Linux and
// ~/Library/Application Support on macOS, which both match Espanso's layout.
func DefaultMatchDir() string {
	return filepath.Join(xdg.ConfigHome, "espanso", "match")
}

// Prefs are the preferences persisted across sessions.
type Prefs struct {
	LastDir            string `yaml:"last_dir,omitempty"`
	LastFile           string `yaml:"last_file,omitempty"`
	SkipPackageWarning bool   `yaml:"skip_package_warning,omitempty"`
}

func prefsPath() string {
	return filepath.Join(xdg.ConfigHome, "ezpanso", "config.yml")
}

// LoadPrefs reads the saved preferences. Missing or unreadable files yield
// zero-value prefs, never an error: preferences are a convenience.
func LoadPrefs() Prefs {
	var p Prefs
	data, err := os.ReadFile(prefsPath())
	if err != nil {
		return p
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	return p
}

// SavePrefs writes the preferences to the config directory.
func SavePrefs(p Prefs) error {
	path := prefsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ClearPrefs removes the saved preferences file.
func ClearPrefs() error {
	err := os.Remove(prefsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
