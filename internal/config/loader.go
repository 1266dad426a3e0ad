package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")           // Current directory
		v.AddConfigPath("./configs")   // Project configs directory
		v.AddConfigPath("./config")    // Alternative config directory
		v.AddConfigPath("/etc/auspex") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides: AUSPEX_SERVER_HTTP_PORT maps to
	// server.http_port
	v.SetEnvPrefix("AUSPEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8000)

	// CORS defaults
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_headers", []string{
		"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID",
	})

	// Auth defaults
	v.SetDefault("auth.enabled", false)

	// Request limit defaults
	v.SetDefault("limits.max_horizon", 365)
	v.SetDefault("limits.min_forecast_points", 10)
	v.SetDefault("limits.min_anomaly_points", 20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 8000,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID",
			},
		},
		Auth: AuthConfig{
			Enabled: false,
		},
		Limits: LimitsConfig{
			MaxHorizon:        365,
			MinForecastPoints: 10,
			MinAnomalyPoints:  20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
