package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default profile file name.
const DefaultConfigFile = ".blogsmith"

// ErrConfigNotFound is returned when the profile file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads company profiles from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// treat that as fatal only when the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Companies == nil {
		cf.Companies = make(map[string]Profile)
	}

	return &cf, nil
}

// FindConfigFile searches for the profile file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .blogsmith in the current directory
//  3. Look for .blogsmith in the user's home directory
//
// Returns the path to the file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
