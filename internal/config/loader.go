package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a loader reading the config file named by TRK_CONFIG,
// or ~/.trk/config.yaml
func NewLoader() *Loader {
	path := os.Getenv("TRK_CONFIG")
	if path == "" {
		path = filepath.Join(DefaultDir(), "config.yaml")
	}
	return NewLoaderWithPath(path)
}

// NewLoaderWithPath creates a loader reading the given config file
func NewLoaderWithPath(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile merges the YAML file over the defaults. A missing file is not an error.
func (l *Loader) loadFile() error {
	if l.path == "" {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", l.path, err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	APIURL         *string
	APITimeout     *time.Duration
	CredentialsDir *string
	RecentLimit    *int
	TimeFormat     *string
	Timeout        *time.Duration
	Verbose        *bool
	MockAddr       *string
}

// apply copies every set override onto config
func (o *ConfigOverrides) apply(config *Config) {
	if o.APIURL != nil {
		config.API.URL = *o.APIURL
	}
	if o.APITimeout != nil {
		config.API.Timeout = *o.APITimeout
	}
	if o.CredentialsDir != nil {
		config.Credentials.Dir = *o.CredentialsDir
	}
	if o.RecentLimit != nil {
		config.Stores.RecentLimit = *o.RecentLimit
	}
	if o.TimeFormat != nil {
		config.Display.TimeFormat = *o.TimeFormat
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	if o.MockAddr != nil {
		config.MockServer.Addr = *o.MockAddr
	}
}
