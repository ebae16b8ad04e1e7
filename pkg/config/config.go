// Package config loads client configuration from YAML files,
// environment variables and .env files, with defaults and precedence:
// command line flags > environment > .env > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"instakit/pkg/instagram"
)

// Config holds everything the CLI and client need to run.
type Config struct {
	Client  ClientConfig  `yaml:"client" json:"client"`
	HTTP    HTTPConfig    `yaml:"http" json:"http"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ClientConfig is the application's API identity.
type ClientConfig struct {
	ClientID    string   `yaml:"client_id" json:"client_id"`
	RedirectURI string   `yaml:"redirect_uri" json:"redirect_uri"`
	APIScheme   string   `yaml:"api_scheme" json:"api_scheme"`
	APIHost     string   `yaml:"api_host" json:"api_host"`
	Scopes      []string `yaml:"scopes" json:"scopes"`
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level"`
	File    string `yaml:"file" json:"file"`
	Console bool   `yaml:"console" json:"console"`
}

// DefaultConfig returns a Config with production defaults. The client
// identity fields have no sensible defaults and stay empty.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			APIScheme: instagram.DefaultAPIScheme,
			APIHost:   instagram.DefaultAPIHost,
			Scopes:    []string{string(instagram.ScopeBasic)},
		},
		HTTP: HTTPConfig{
			Timeout: instagram.DefaultHTTPTimeout,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// LoadFromEnv overrides fields from INSTAKIT_* environment variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("INSTAKIT_CLIENT_ID"); v != "" {
		c.Client.ClientID = v
	}
	if v := os.Getenv("INSTAKIT_REDIRECT_URI"); v != "" {
		c.Client.RedirectURI = v
	}
	if v := os.Getenv("INSTAKIT_API_SCHEME"); v != "" {
		c.Client.APIScheme = v
	}
	if v := os.Getenv("INSTAKIT_API_HOST"); v != "" {
		c.Client.APIHost = v
	}
	if v := os.Getenv("INSTAKIT_SCOPES"); v != "" {
		c.Client.Scopes = splitScopes(v)
	}
	if v := os.Getenv("INSTAKIT_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("INSTAKIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("INSTAKIT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// LoadFromFile merges a YAML config file into c. An empty path searches
// the standard locations; a missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func findConfigFile() string {
	locations := []string{
		".instakit.yaml",
		".instakit.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "instakit", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "instakit", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".instakit.yaml"),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// MergeFlags overrides fields from resolved command line flags.
func (c *Config) MergeFlags(flags map[string]interface{}) {
	if v, ok := flags["client-id"].(string); ok && v != "" {
		c.Client.ClientID = v
	}
	if v, ok := flags["redirect-uri"].(string); ok && v != "" {
		c.Client.RedirectURI = v
	}
	if v, ok := flags["scopes"].(string); ok && v != "" {
		c.Client.Scopes = splitScopes(v)
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Client.ClientID == "" {
		errs = append(errs, errors.New("client ID is required"))
	}
	if c.Client.RedirectURI == "" {
		errs = append(errs, errors.New("redirect URI is required"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("HTTP timeout must be positive"))
	}
	for _, s := range c.Client.Scopes {
		if _, err := instagram.ParseScope(s); err != nil {
			errs = append(errs, err)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "disabled":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// ClientConfiguration converts the loaded settings into the client's
// configuration type. Call Validate first; unknown scopes are dropped
// here.
func (c *Config) ClientConfiguration() instagram.ClientConfiguration {
	var scopes []instagram.Scope
	for _, s := range c.Client.Scopes {
		if scope, err := instagram.ParseScope(s); err == nil {
			scopes = append(scopes, scope)
		}
	}
	return instagram.ClientConfiguration{
		ClientID:    c.Client.ClientID,
		RedirectURI: c.Client.RedirectURI,
		APIScheme:   c.Client.APIScheme,
		APIHost:     c.Client.APIHost,
		Scopes:      scopes,
	}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load assembles the configuration from every source and validates it.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".instakit.env"))

	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(configPath); err != nil {
		return nil, err
	}
	cfg.LoadFromEnv()
	cfg.MergeFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func splitScopes(raw string) []string {
	var scopes []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			scopes = append(scopes, trimmed)
		}
	}
	return scopes
}
