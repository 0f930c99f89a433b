package config

import (
	"os"
	"path/filepath"
)

// resolveRuntimePath anchors a relative runtime path under the user's
// home directory so the assistant behaves the same regardless of the
// working directory it was started from.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".commandecho"
	}
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("ECHO_RUNTIME_PATH"))
}
