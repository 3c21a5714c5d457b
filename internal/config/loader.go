package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDotSweep loads the calibration sweep configuration.
// Search order: customPath -> ~/.gazelab/configs/dotsweep.yaml -> ./configs/dotsweep.yaml -> embedded default
func LoadDotSweep(customPath string) (DotSweepConfig, error) {
	cfg := DefaultDotSweepConfig()
	if err := load("dotsweep.yaml", customPath, defaultDotSweepYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadSpotDiff loads the spot the difference configuration.
// Search order: customPath -> ~/.gazelab/configs/spotdiff.yaml -> ./configs/spotdiff.yaml -> embedded default
func LoadSpotDiff(customPath string) (SpotDiffConfig, error) {
	cfg := DefaultSpotDiffConfig()
	if err := load("spotdiff.yaml", customPath, defaultSpotDiffYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load decodes the first config found into out, which holds hardcoded
// defaults on entry. Fields missing from the file keep those defaults.
// Only an explicit customPath is allowed to fail.
func load(filename, customPath string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	//nolint:errcheck // Hardcoded defaults already in out if the embed is broken
	yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gazelab", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
