package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".haven"

// GetRuntimePath resolves HAVEN_RUNTIME_PATH before any .env file is loaded.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("HAVEN_RUNTIME_PATH"))
}

// resolveRuntimePath places relative paths under the home directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
