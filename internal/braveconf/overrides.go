package braveconf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func overridesFilePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

// OverridesPath returns the path to the optional local settings file, or ""
// if it could not be resolved.
func OverridesPath() string {
	p, err := overridesFilePath()
	if err != nil {
		return ""
	}
	return p
}

// loadOverridesFile reads the optional settings.yaml. A missing file is not
// an error: it simply yields zero-value Overrides (every field nil, so Load
// falls through to environment variables and then defaults). A present but
// unparsable file IS an error, surfaced to Load as a warning.
func loadOverridesFile() (Overrides, error) {
	path, err := overridesFilePath()
	if err != nil {
		return Overrides{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var overrides Overrides
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return Overrides{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return overrides, nil
}
