// Package config loads and validates the server configuration from a
// YAML file, with environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alcovehq/alcove/pkg/vault"
)

// Config is the full server configuration.
type Config struct {
	// Vault holds the connection parameters for the note-vault service.
	Vault vault.Config `yaml:"vault" json:"vault"`

	// Conversion configures the document-conversion pipeline.
	Conversion ConversionConfig `yaml:"conversion" json:"conversion"`

	// Server configures the HTTP front end.
	Server ServerConfig `yaml:"server" json:"server"`
}

// ConversionConfig defines document-conversion settings.
type ConversionConfig struct {
	// BaseDir resolves relative source paths in conversion requests.
	BaseDir string `yaml:"base_dir" json:"base_dir"`

	// AllowedPatterns and DeniedPatterns are glob patterns checked
	// against resolved source paths. Denied wins; an empty allowed list
	// permits everything not denied.
	AllowedPatterns []string `yaml:"allowed_patterns" json:"allowed_patterns"`
	DeniedPatterns  []string `yaml:"denied_patterns" json:"denied_patterns"`

	// Timeout bounds a whole conversion attempt including fallback.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ServerConfig defines the HTTP listen address.
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// DefaultConfig returns a configuration suitable for a local vault
// service with default ports.
func DefaultConfig() *Config {
	return &Config{
		Vault: vault.Config{
			Scheme: "https",
			Host:   "127.0.0.1",
			Port:   27124,
		},
		Conversion: ConversionConfig{
			BaseDir: ".",
			Timeout: 120 * time.Second,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// Load reads a YAML configuration file over the defaults, then applies
// environment overrides. An empty path skips the file and uses defaults
// plus environment.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// applyEnv overrides file values from the environment. The API key is
// expected to come from the environment in most deployments so it stays
// out of config files.
func (c *Config) applyEnv() {
	if key := os.Getenv("ALCOVE_VAULT_API_KEY"); key != "" {
		c.Vault.APIKey = key
	}
	if host := os.Getenv("ALCOVE_VAULT_HOST"); host != "" {
		c.Vault.Host = host
	}
	if port := os.Getenv("ALCOVE_VAULT_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			c.Vault.Port = n
		}
	}
}

// Validate checks the configuration for startup errors.
func (c *Config) Validate() error {
	if c.Vault.Host == "" {
		return fmt.Errorf("vault host cannot be empty")
	}
	if c.Vault.Port < 1 || c.Vault.Port > 65535 {
		return fmt.Errorf("vault port %d out of range", c.Vault.Port)
	}
	if c.Vault.APIKey == "" {
		return fmt.Errorf("vault API key is required (set ALCOVE_VAULT_API_KEY)")
	}
	if c.Vault.Scheme != "" && c.Vault.Scheme != "http" && c.Vault.Scheme != "https" {
		return fmt.Errorf("vault scheme must be http or https, got %q", c.Vault.Scheme)
	}
	if c.Conversion.Timeout < 0 {
		return fmt.Errorf("conversion timeout cannot be negative")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}
