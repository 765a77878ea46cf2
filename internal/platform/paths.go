package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultRoot returns the conventional espanso match directory for the
// current platform. It falls back to a relative "match" directory when
// the home location cannot be determined.
func DefaultRoot() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "espanso", "match")
		}
		return "match"
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "espanso", "match")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "match"
	}
	return filepath.Join(home, ".config", "espanso", "match")
}
