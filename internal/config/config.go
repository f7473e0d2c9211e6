package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the tracker client
type Config struct {
	API         APIConfig         `yaml:"api"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Stores      StoresConfig      `yaml:"stores"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
	MockServer  MockServerConfig  `yaml:"mock_server"`
}

// APIConfig holds the remote REST service settings
type APIConfig struct {
	URL       string        `yaml:"url" env:"TRK_API_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"TRK_API_TIMEOUT"`
	LoginPath string        `yaml:"login_path" env:"TRK_LOGIN_PATH"`
}

// CredentialsConfig holds where the credential token is persisted
type CredentialsConfig struct {
	Dir            string `yaml:"dir" env:"TRK_CREDENTIALS_DIR"`
	Filename       string `yaml:"filename" env:"TRK_CREDENTIALS_FILENAME"`
	DirPermissions uint32 `yaml:"dir_permissions" env:"TRK_CREDENTIALS_DIR_PERMISSIONS"`
}

// StoresConfig holds store behavior settings
type StoresConfig struct {
	RecentLimit int `yaml:"recent_limit" env:"TRK_RECENT_LIMIT"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `yaml:"time_format" env:"TRK_TIME_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TRK_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TRK_VERBOSE"`
}

// MockServerConfig holds the local development backend settings
type MockServerConfig struct {
	Addr string `yaml:"addr" env:"TRK_MOCK_ADDR"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:       "http://localhost:8000",
			Timeout:   10 * time.Second,
			LoginPath: "/login",
		},
		Credentials: CredentialsConfig{
			Dir:            DefaultDir(),
			Filename:       "credentials.db",
			DirPermissions: 0700,
		},
		Stores: StoresConfig{
			RecentLimit: 10,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04:05",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		MockServer: MockServerConfig{
			Addr: "127.0.0.1:8000",
		},
	}
}

// DefaultDir returns ~/.trk, or .trk when the home directory is unknown
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".trk"
	}
	return filepath.Join(homeDir, ".trk")
}

// GetCredentialsPath returns the full path to the credential database
func (c *Config) GetCredentialsPath() string {
	return filepath.Join(c.Credentials.Dir, c.Credentials.Filename)
}

// GetAPIBaseURL returns the API root every collection path is resolved against
func (c *Config) GetAPIBaseURL() string {
	return c.API.URL + "/api"
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if v := os.Getenv("TRK_API_URL"); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv("TRK_API_TIMEOUT"); v != "" {
		c.API.Timeout = ParseDurationWithFallback(v, c.API.Timeout)
	}
	if v := os.Getenv("TRK_LOGIN_PATH"); v != "" {
		c.API.LoginPath = v
	}

	if v := os.Getenv("TRK_CREDENTIALS_DIR"); v != "" {
		c.Credentials.Dir = v
	}
	if v := os.Getenv("TRK_CREDENTIALS_FILENAME"); v != "" {
		c.Credentials.Filename = v
	}
	if v := os.Getenv("TRK_CREDENTIALS_DIR_PERMISSIONS"); v != "" {
		c.Credentials.DirPermissions = ParseUint32WithFallback(v, 8, c.Credentials.DirPermissions)
	}

	if v := os.Getenv("TRK_RECENT_LIMIT"); v != "" {
		c.Stores.RecentLimit = ParseIntWithFallback(v, c.Stores.RecentLimit)
	}

	if v := os.Getenv("TRK_TIME_FORMAT"); v != "" {
		c.Display.TimeFormat = v
	}

	if v := os.Getenv("TRK_APP_TIMEOUT"); v != "" {
		c.Application.Timeout = ParseDurationWithFallback(v, c.Application.Timeout)
	}
	if v := os.Getenv("TRK_VERBOSE"); v != "" {
		c.Application.Verbose = ParseBoolWithFallback(v, c.Application.Verbose)
	}

	if v := os.Getenv("TRK_MOCK_ADDR"); v != "" {
		c.MockServer.Addr = v
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return &ConfigError{Field: "api.url", Message: "API URL cannot be empty"}
	}
	if u, err := url.Parse(c.API.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "api.url", Message: "API URL must be an absolute http(s) URL"}
	}
	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "api.timeout", Message: "API timeout must be positive"}
	}
	if c.API.LoginPath == "" || c.API.LoginPath[0] != '/' {
		return &ConfigError{Field: "api.login_path", Message: "login path must start with /"}
	}

	if c.Credentials.Dir == "" {
		return &ConfigError{Field: "credentials.dir", Message: "credentials directory cannot be empty"}
	}
	if c.Credentials.Filename == "" {
		return &ConfigError{Field: "credentials.filename", Message: "credentials filename cannot be empty"}
	}

	if c.Stores.RecentLimit < 1 {
		return &ConfigError{Field: "stores.recent_limit", Message: "recent limit must be at least 1"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	if c.MockServer.Addr == "" {
		return &ConfigError{Field: "mock_server.addr", Message: "mock server address cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
