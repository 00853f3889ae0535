package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindManifest walks up from startDir to locate migralint.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadNearest loads the manifest closest to startDir, or the defaults when
// none exists.
func LoadNearest(startDir string) (Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Manifest{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
