package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// CORSConfig represents cross-origin request configuration
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"` // Allowed origins ("*" for any)
	AllowHeaders []string `mapstructure:"allow_headers"` // Allowed request headers
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LimitsConfig bounds what a single analytics request may ask for.
// The handlers enforce these before any computation starts.
type LimitsConfig struct {
	MaxHorizon        int `mapstructure:"max_horizon"`         // Max forecast steps per request
	MinForecastPoints int `mapstructure:"min_forecast_points"` // Min history length for forecasting
	MinAnomalyPoints  int `mapstructure:"min_anomaly_points"`  // Min history length for anomaly detection
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("limits config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// Validate validates request limit configuration
func (c *LimitsConfig) Validate() error {
	if c.MaxHorizon < 1 {
		return fmt.Errorf("limits.max_horizon must be at least 1")
	}

	if c.MinForecastPoints < 2 {
		return fmt.Errorf("limits.min_forecast_points must be at least 2")
	}

	if c.MinAnomalyPoints < 2 {
		return fmt.Errorf("limits.min_anomaly_points must be at least 2")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
