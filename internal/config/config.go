// Package config builds the immutable server configuration from defaults,
// an optional config file, LOCALEOPS_* environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Validate when no backend API key is configured.
var ErrMissingAPIKey = errors.New("LOCALEOPS_API_KEY is not set")

// Transports accepted for the MCP channel.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const DefaultBaseURL = "https://api.localeops.dev/v1"

type Config struct {
	APIKey            string `mapstructure:"api_key" yaml:"api_key"` // Secret: backend bearer token
	BaseURL           string `mapstructure:"api_url" yaml:"api_url"`
	LogLevel          string `mapstructure:"log_level" yaml:"log_level"`
	Transport         string `mapstructure:"transport" yaml:"transport"`
	Listen            string `mapstructure:"listen" yaml:"listen"`             // HTTP transport address
	MetricsAddr       string `mapstructure:"metrics_addr" yaml:"metrics_addr"` // Separate metrics listener; empty disables it
	MaxCallsPerMinute int    `mapstructure:"max_calls_per_minute" yaml:"max_calls_per_minute"`
	MaxConcurrency    int    `mapstructure:"max_concurrency" yaml:"max_concurrency"`
}

var defaults = map[string]any{
	"api_url":              DefaultBaseURL,
	"log_level":            "info",
	"transport":            TransportStdio,
	"listen":               "127.0.0.1:7891",
	"max_calls_per_minute": 500,
	"max_concurrency":      8,
}

var envBindings = map[string][]string{
	"api_key":              {"LOCALEOPS_API_KEY"},
	"api_url":              {"LOCALEOPS_API_URL"},
	"log_level":            {"LOCALEOPS_LOG_LEVEL"},
	"transport":            {"LOCALEOPS_TRANSPORT"},
	"listen":               {"LOCALEOPS_LISTEN"},
	"metrics_addr":         {"LOCALEOPS_METRICS_ADDR"},
	"max_calls_per_minute": {"LOCALEOPS_MAX_CALLS_PER_MINUTE"},
	"max_concurrency":      {"LOCALEOPS_MAX_CONCURRENCY"},
}

// flagBindings maps config keys to CLI flag names. Flags only override when set.
var flagBindings = map[string]string{
	"api_url":      "api-url",
	"log_level":    "log-level",
	"transport":    "transport",
	"listen":       "listen",
	"metrics_addr": "metrics-addr",
}

// Load reads configuration. filePath may be empty; flags may be nil.
// The result is not validated.
func Load(filePath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := bindEnvs(v); err != nil {
		return Config{}, err
	}
	if err := bindFlags(v, flags); err != nil {
		return Config{}, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", filePath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for key, name := range flagBindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Validate normalizes cfg in place and reports the first problem found.
// A single trailing slash is stripped from BaseURL.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}

	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid LOCALEOPS_API_URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid LOCALEOPS_API_URL %q: must be an absolute http(s) URL", c.BaseURL)
	}

	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport %q: must be %q or %q", c.Transport, TransportStdio, TransportHTTP)
	}
	if c.Transport == TransportHTTP && c.Listen == "" {
		return errors.New("http transport needs a listen address")
	}

	if c.MaxCallsPerMinute < 0 {
		return fmt.Errorf("max calls per minute must not be negative, got %d", c.MaxCallsPerMinute)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	return nil
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "[redacted]"
	}
	return c
}
