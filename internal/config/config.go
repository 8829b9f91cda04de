// Package config provides centralized configuration management for the supplier
// import service. Values come from environment variables (optionally seeded
// from a .env file by main) and are validated on startup so misconfiguration
// fails fast.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `envconfig:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request, body included (default: 30s)
	ReadTimeout time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing the response (default: 0, no limit)
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds each request. Zero leaves the store client default in charge.
	RequestTimeout time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"0s"`
}

// DatabaseConfig holds connection pool settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. DB_URL is accepted as a fallback.
	URL string `envconfig:"DATABASE_URL"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `envconfig:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections kept open (default: 0)
	MinConns int `envconfig:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// StoreConfig names the store objects the service calls and picks the bulk
// payload shape the import procedure expects.
type StoreConfig struct {
	// BulkStrategy is "array" (escaped text[] lines) or "table" (supplier_row[] composites)
	BulkStrategy string `envconfig:"STORE_BULK_STRATEGY" default:"array"`

	// ImportProcedure receives the whole batch as its single argument.
	ImportProcedure string `envconfig:"STORE_IMPORT_PROCEDURE" default:"supplier_import_csv"`

	// TableImportProcedure is used instead of ImportProcedure for the "table" strategy.
	TableImportProcedure string `envconfig:"STORE_TABLE_IMPORT_PROCEDURE" default:"supplier_import_rows"`

	// SubmitProcedure upserts a single supplier from eleven scalar arguments.
	SubmitProcedure string `envconfig:"STORE_SUBMIT_PROCEDURE" default:"supplier_import"`

	// ExportFunction is a set-returning function producing supplier rows plus error_msg.
	ExportFunction string `envconfig:"STORE_EXPORT_FUNCTION" default:"supplier_export"`

	// SupplierTable is truncated by the bulk delete.
	SupplierTable string `envconfig:"STORE_SUPPLIER_TABLE" default:"suppliers_masters"`

	// RowType is the composite type bound by the "table" strategy.
	RowType string `envconfig:"STORE_ROW_TYPE" default:"supplier_row"`

	// MaxLineBytes caps each escaped line of the "array" strategy (default: 4000)
	MaxLineBytes int `envconfig:"STORE_MAX_LINE_BYTES" default:"4000"`
}

// UploadConfig holds CSV upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum accepted upload in bytes (default: 32MB)
	MaxFileSize int64 `envconfig:"UPLOAD_MAX_FILE_SIZE" default:"33554432"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `envconfig:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for the import endpoint (default: 10)
	UploadLimit int `envconfig:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs allowed to set X-Real-IP
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	// RequireAPIKey guards the destructive delete endpoint with X-API-Key (default: true)
	RequireAPIKey bool `envconfig:"REQUIRE_API_KEY" default:"true"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `envconfig:"API_KEYS"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `envconfig:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ImportProcedureName returns the bulk procedure matching the configured strategy.
func (c *StoreConfig) ImportProcedureName() string {
	if c.BulkStrategy == "table" {
		return c.TableImportProcedure
	}
	return c.ImportProcedure
}
