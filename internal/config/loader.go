package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".passaudit"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .passaudit configuration file.
// Every field is optional; CLI flags override file values.
type File struct {
	// Online enables the k-anonymity breach lookup by default.
	Online *bool `yaml:"online,omitempty"`

	// Endpoint overrides the range endpoint base URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Timeout overrides the online lookup timeout, in time.ParseDuration
	// syntax (e.g. "5s", "500ms"). Kept as a string because yaml.v3 has
	// no native duration support.
	Timeout string `yaml:"timeout,omitempty"`

	// Suggestions overrides the number of replacement candidates.
	Suggestions int `yaml:"suggestions,omitempty"`

	// BatchSize overrides the number of concurrent analyses.
	BatchSize int `yaml:"batchSize,omitempty"`

	// CorpusFiles lists extra breach corpus files to merge into the
	// built-in offline corpus.
	CorpusFiles []string `yaml:"corpusFiles,omitempty"`

	// HistoryDir overrides the history database directory.
	HistoryDir string `yaml:"historyDir,omitempty"`
}

// ApplyTo merges the file values into a Config. Only fields actually present
// in the file override; everything else keeps the Config's current value.
// An unparsable timeout is an error so typos do not silently fall back.
func (f *File) ApplyTo(c *Config) error {
	if f.Online != nil {
		c.Online = *f.Online
	}
	if f.Endpoint != "" {
		c.OnlineEndpoint = f.Endpoint
	}
	if f.Timeout != "" {
		timeout, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		c.OnlineTimeout = timeout
	}
	if f.Suggestions > 0 {
		c.SuggestionCount = f.Suggestions
	}
	if f.BatchSize > 0 {
		c.BatchSize = f.BatchSize
	}
	if len(f.CorpusFiles) > 0 {
		c.CorpusFiles = append(c.CorpusFiles, f.CorpusFiles...)
	}
	if f.HistoryDir != "" {
		c.DBDir = f.HistoryDir
		c.SaveHistory = true
	}
	return nil
}

// LoadConfigFile loads configuration from a YAML file.
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

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .passaudit in the current directory
// 3. Look for .passaudit in the user's home directory
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
