package xfs

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces a leading tilde (~) with the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return path
}

// Resolve expands a leading tilde and joins relative paths onto base.
// Absolute paths are returned cleaned but otherwise untouched.
func Resolve(base, path string) string {
	path = ExpandTilde(path)
	if filepath.IsAbs(path) || base == "" {
		return filepath.Clean(path)
	}

	return filepath.Join(ExpandTilde(base), path)
}
