package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gateway.
// Values come from defaults, an optional config file and the environment,
// in increasing order of precedence.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Shopify   ShopifyConfig   `mapstructure:"shopify"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	LogLevel  string          `mapstructure:"log_level"`
	// Debug exposes stack traces in 500 responses of the order lookup.
	Debug bool `mapstructure:"debug"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type AnthropicConfig struct {
	APIKey             string  `mapstructure:"api_key"`
	BaseURL            string  `mapstructure:"base_url"`
	Version            string  `mapstructure:"version"`
	DefaultModel       string  `mapstructure:"default_model"`
	DefaultMaxTokens   int     `mapstructure:"default_max_tokens"`
	DefaultTemperature float64 `mapstructure:"default_temperature"`
}

type ShopifyConfig struct {
	StoreDomain     string `mapstructure:"store_domain"`
	AdminAPIToken   string `mapstructure:"admin_api_token"`
	APIVersion      string `mapstructure:"api_version"`
	OrderNamePrefix string `mapstructure:"order_name_prefix"`
}

type UpstreamConfig struct {
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration `mapstructure:"timeout"`
}

// envBindings maps config keys to the environment variable names the
// hosting platform is configured with.
var envBindings = map[string]string{
	"server.port":                   "PORT",
	"server.host":                   "HOST",
	"server.read_timeout":           "READ_TIMEOUT",
	"server.write_timeout":          "WRITE_TIMEOUT",
	"server.shutdown_timeout":       "SHUTDOWN_TIMEOUT",
	"cors.allowed_origins":          "CORS_ALLOWED_ORIGINS",
	"anthropic.api_key":             "ANTHROPIC_API_KEY",
	"anthropic.base_url":            "ANTHROPIC_BASE_URL",
	"anthropic.version":             "ANTHROPIC_VERSION",
	"anthropic.default_model":       "CHAT_DEFAULT_MODEL",
	"anthropic.default_max_tokens":  "CHAT_DEFAULT_MAX_TOKENS",
	"anthropic.default_temperature": "CHAT_DEFAULT_TEMPERATURE",
	"shopify.store_domain":          "SHOPIFY_STORE_DOMAIN",
	"shopify.admin_api_token":       "SHOPIFY_ADMIN_API_TOKEN",
	"shopify.api_version":           "SHOPIFY_API_VERSION",
	"shopify.order_name_prefix":     "SHOPIFY_ORDER_NAME_PREFIX",
	"upstream.timeout":              "UPSTREAM_TIMEOUT",
	"log_level":                     "LOG_LEVEL",
	"debug":                         "GATEWAY_DEBUG",
}

// DefaultAllowedOrigins are the storefront origins permitted to call the API
var DefaultAllowedOrigins = []string{
	"https://www.gorillagrowtent.com",
	"https://gorillagrowtent.com",
	"https://gorilla-grow-tent.myshopify.com",
}

// Load reads configuration from the environment and, when configFile is
// not empty, from that file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORS.AllowedOrigins = normalizeOrigins(cfg.CORS.AllowedOrigins)
	cfg.Shopify.StoreDomain = SanitizeDomain(cfg.Shopify.StoreDomain)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("cors.allowed_origins", DefaultAllowedOrigins)

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.base_url", "https://api.anthropic.com")
	v.SetDefault("anthropic.version", "2023-06-01")
	v.SetDefault("anthropic.default_model", "claude-3-5-sonnet-latest")
	v.SetDefault("anthropic.default_max_tokens", 1024)
	v.SetDefault("anthropic.default_temperature", 0.7)

	v.SetDefault("shopify.store_domain", "")
	v.SetDefault("shopify.admin_api_token", "")
	v.SetDefault("shopify.api_version", "2024-10")
	v.SetDefault("shopify.order_name_prefix", "GG-")

	v.SetDefault("upstream.timeout", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
}

// Validate checks if the configuration is valid.
// Upstream credentials are not checked here; handlers report them per request.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("at least one allowed origin must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Anthropic.DefaultMaxTokens <= 0 {
		return errors.New("CHAT_DEFAULT_MAX_TOKENS must be positive")
	}

	return nil
}

// ShopifyConfigured reports whether both the store domain and admin token are set
func (c *Config) ShopifyConfigured() bool {
	return c.Shopify.StoreDomain != "" && c.Shopify.AdminAPIToken != ""
}

// NormalizeOrigin strips a single trailing slash
func NormalizeOrigin(origin string) string {
	return strings.TrimSuffix(origin, "/")
}

var schemePrefix = regexp.MustCompile(`^https?://`)

// SanitizeDomain reduces a store domain entered as a URL to its bare host
func SanitizeDomain(raw string) string {
	domain := schemePrefix.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.TrimSuffix(domain, "/")
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = NormalizeOrigin(strings.TrimSpace(o))
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
