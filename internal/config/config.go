// Package config provides centralized configuration for the stow server and
// CLI. Settings come from environment variables with defaults applied and
// are validated on startup so misconfiguration fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
	Import   ImportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response. Exports
	// of large datasets stream, so the default is generous (default: 5m)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests. Imports make
	// one network round-trip per created entity, so this bounds the whole
	// run (default: 10m)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"10m"`
}

// DatabaseConfig holds PostgreSQL connection settings for the server.
// The stowctl CLI does not touch the database and ignores this section.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of pooled connections (default: 20)
	MaxConns int `env:"DB_MAX_CONNS" default:"20"`

	// MinConns is the minimum number of connections to keep open (default: 4)
	MinConns int `env:"DB_MIN_CONNS" default:"4"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// GatewayConfig holds settings for the remote data store client used by
// stowctl and by anything importing against another stow instance.
type GatewayConfig struct {
	// BaseURL is the root of the remote stow API, e.g. https://stow.example.com
	BaseURL string `env:"GATEWAY_BASE_URL"`

	// APIKey authenticates requests against the remote server (optional).
	APIKey string `env:"GATEWAY_API_KEY"`

	// Timeout is the per-request timeout for gateway calls (default: 30s)
	Timeout time.Duration `env:"GATEWAY_TIMEOUT" default:"30s"`
}

// ImportConfig holds archive import settings.
type ImportConfig struct {
	// MaxArchiveSize is the maximum accepted upload in bytes (default: 50MB)
	MaxArchiveSize int64 `env:"IMPORT_MAX_ARCHIVE_SIZE" default:"52428800"`

	// MaxConcurrent caps simultaneous import runs. Imports hold a database
	// connection per entity write, so this stays small (default: 2)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"2"`

	// MaxWait is how long an import request waits for a slot before being
	// rejected (default: 30s)
	MaxWait time.Duration `env:"IMPORT_MAX_WAIT" default:"30s"`
}

// RateLimitConfig holds per-IP request throttling settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// RequireAPIKey gates the API behind X-API-Key auth (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is the comma-separated list of accepted keys.
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port form.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
