// fsutil/paths.go
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// PathSeparator returns the OS-specific path separator character
func PathSeparator() string {
	return string(os.PathSeparator)
}

// NormalizePath normalizes a path for the current OS. This is particularly
// useful when dealing with paths that might have been created on a
// different OS.
func NormalizePath(path string) string {
	result := strings.ReplaceAll(path, "\\", PathSeparator())
	result = strings.ReplaceAll(result, "/", PathSeparator())
	return filepath.Clean(result)
}

// BaseName returns the final element of a path, tolerating foreign path
// separators.
func BaseName(path string) string {
	return filepath.Base(NormalizePath(path))
}

// GetConfigDir returns the per-user configuration directory for the app
func GetConfigDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}
