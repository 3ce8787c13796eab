package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindUpwards walks from dir towards the filesystem root looking for a file
// at the relative path name. It returns the absolute path of the first
// match, or an empty string when nothing is found.
func FindUpwards(dir, name string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(current, name)
		info, err := os.Stat(candidate)
		if err == nil {
			if !info.IsDir() {
				return candidate, nil
			}
		} else if !os.IsNotExist(err) {
			// Permission problems are reported rather than skipped.
			return "", fmt.Errorf("error checking for %s: %w", candidate, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}
