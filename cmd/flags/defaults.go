package flags

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir is the default data directory to use for the state database.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		// As we cannot guess a stable location, return empty and handle later
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Cortex")
	case "windows":
		return filepath.Join(home, "AppData", "Local", "Cortex")
	default:
		return filepath.Join(home, ".cortex")
	}
}
