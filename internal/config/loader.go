package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".addonscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the on-disk YAML configuration.
// All fields are optional; zero values leave the corresponding Config
// field untouched.
type File struct {
	// NamespaceDir overrides the nested-layout anchor directory name.
	NamespaceDir string `yaml:"namespace_dir"`

	// Exclude lists additional top-level directory names to skip.
	Exclude []string `yaml:"exclude"`

	// MaxDepth overrides the traversal depth bound.
	MaxDepth int `yaml:"max_depth"`

	// Output overrides the CSV report destination.
	Output string `yaml:"output"`
}

// LoadConfigFile loads scan settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
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

	return &cf, nil
}

// Apply copies the file's non-zero settings onto the given Config.
// CLI flags are applied after this, so flags win over the file.
func (f *File) Apply(c *Config) {
	if f.NamespaceDir != "" {
		c.NamespaceDir = f.NamespaceDir
	}
	if len(f.Exclude) > 0 {
		c.ExcludeDirs = append(c.ExcludeDirs, f.Exclude...)
	}
	if f.MaxDepth > 0 {
		c.MaxDepth = f.MaxDepth
	}
	if f.Output != "" {
		c.OutputPath = f.Output
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .addonscan in the current directory
// 3. Look for .addonscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
