// Package config provides centralized configuration management for the alumni tool.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Logging  LoggingConfig
	Import   ImportConfig
	Auth     AuthConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// Password overrides the password embedded in URL. It may be left empty
	// and supplied interactively before the pool is opened.
	Password string `env:"DB_PASSWORD"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// ConnectTimeout bounds the initial connect and ping (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File receives log output so the terminal stays free for the menu.
	// Set LOG_FILE=- to log to stderr.
	File string `env:"LOG_FILE" default:"alumni_system.log"`
}

// ImportConfig holds batch import settings.
type ImportConfig struct {
	// FailedRowsDir receives "<name> - failed.csv" for skipped rows; empty disables it
	FailedRowsDir string `env:"IMPORT_FAILED_ROWS_DIR"`

	// MaxFileSize is the maximum accepted import file size in bytes (default: 50MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"52428800"`
}

// AuthConfig holds the role passwords for the interactive menu.
// Each value is either a bcrypt hash or a plaintext secret; an empty value
// disables that role.
type AuthConfig struct {
	AdminPassword   string `env:"ADMIN_PASSWORD"`
	StudentPassword string `env:"STUDENT_PASSWORD"`

	// MaxAttempts is the number of failed logins before the menu gives up (default: 3)
	MaxAttempts int `env:"AUTH_MAX_ATTEMPTS" default:"3"`
}
