package config

import (
	"fmt"
	"strings"
)

// ListenAddress returns the host:port the HTTP server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Logging.Level == "info" && c.Logging.Format == "json"
}

// JoinedOrigins returns the allowed origins as the comma-separated string
// the fiber cors middleware expects
func (c *CORSConfig) JoinedOrigins() string {
	if len(c.AllowOrigins) == 0 {
		return "*"
	}
	return strings.Join(c.AllowOrigins, ",")
}

// JoinedHeaders returns the allowed headers as a comma-separated string
func (c *CORSConfig) JoinedHeaders() string {
	return strings.Join(c.AllowHeaders, ",")
}
