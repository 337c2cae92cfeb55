// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for mtcode.
package config

import "time"

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// SelfID is the bot's own account ID, used to recognize mentions.
	SelfID int64 `yaml:"self_id"`

	// Nicknames the bot answers to. A leading nickname in message text
	// marks the message as addressed to the bot.
	Nicknames []string `yaml:"nicknames,omitempty"`

	// Log controls the structured logger.
	Log LogConfig `yaml:"log,omitempty"`

	// Gateway controls the observability HTTP endpoint.
	Gateway GatewayConfig `yaml:"gateway,omitempty"`
}

// LogConfig controls logger output.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error". Empty means "info".
	Level string `yaml:"level,omitempty"`

	// Format is "text" or "json". Empty means "text".
	Format string `yaml:"format,omitempty"`
}

// GatewayConfig controls the health and metrics HTTP endpoint.
type GatewayConfig struct {
	Enabled         bool          `yaml:"enabled,omitempty"`
	Bind            string        `yaml:"bind,omitempty"`
	ReadTimeout     time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `yaml:"write_timeout,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}
