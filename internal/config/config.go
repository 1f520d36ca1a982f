// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"mandashop/internal/errors"
	"mandashop/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Pricing contains price table settings
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server" yaml:"server"`

	// Notify contains order notification settings
	Notify NotifyConfig `json:"notify" yaml:"notify"`

	// PokeAPI contains species lookup settings
	PokeAPI PokeAPIConfig `json:"pokeapi" yaml:"pokeapi"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// TablePath points at an HCL price table. Empty means the built-in table.
	TablePath string `json:"table_path" yaml:"table_path"`
}

// ServerConfig contains HTTP settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`
}

// NotifyConfig configures the outbound order webhook
type NotifyConfig struct {
	// WebhookURL receives one message per composed order. Empty disables notifications.
	WebhookURL string `json:"webhook_url" yaml:"webhook_url"`

	// Provider selects the payload format (discord, custom)
	Provider string `json:"provider" yaml:"provider"`

	// Secret signs payloads when set
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`

	// TimeoutSeconds bounds a single delivery attempt
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`

	// RetryCount is the number of retries after the first attempt
	RetryCount int `json:"retry_count" yaml:"retry_count"`
}

// Timeout returns the delivery timeout as a duration
func (n NotifyConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// PokeAPIConfig configures species lookups
type PokeAPIConfig struct {
	// Enabled turns on species eligibility checks for orders
	Enabled bool `json:"enabled" yaml:"enabled"`

	// BaseURL is the API root
	BaseURL string `json:"base_url" yaml:"base_url"`

	// CacheSize bounds the number of cached species
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// TimeoutSeconds bounds a single request
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration
func (p PokeAPIConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr: ":8080",
		},
		Notify: NotifyConfig{
			Provider:       "discord",
			TimeoutSeconds: 10,
			RetryCount:     2,
		},
		PokeAPI: PokeAPIConfig{
			Enabled:        false,
			BaseURL:        "https://pokeapi.co/api/v2",
			CacheSize:      512,
			TimeoutSeconds: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. JSON is the default encoding;
// files ending in .yaml or .yml are decoded as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("failed to decode config "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// YAML encodes the configuration for display. The webhook secret is masked.
func (c *Config) YAML() ([]byte, error) {
	masked := *c
	if masked.Notify.Secret != "" {
		masked.Notify.Secret = "********"
	}
	return yaml.Marshal(&masked)
}

// ApplyEnv overrides fields from MANDASHOP_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MANDASHOP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("MANDASHOP_ADDR") == "" {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("MANDASHOP_PRICING_TABLE"); v != "" {
		c.Pricing.TablePath = v
	}
	if v := os.Getenv("MANDASHOP_WEBHOOK_URL"); v != "" {
		c.Notify.WebhookURL = v
	}
	if v := os.Getenv("MANDASHOP_WEBHOOK_SECRET"); v != "" {
		c.Notify.Secret = v
	}
	if v := os.Getenv("MANDASHOP_POKEAPI_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.PokeAPI.Enabled = enabled
		}
	}
	if v := os.Getenv("MANDASHOP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
