package config

import (
	"errors"
	"fmt"
	"net"
)

var logLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

var logFormats = map[string]bool{"": true, "text": true, "json": true}

// Validate checks the structural validity of a Config. It verifies the
// version field, the bot identity, nickname entries, logger settings, and
// the gateway bind address. All problems are reported at once.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if cfg.SelfID <= 0 {
		errs = append(errs, errors.New("config: self_id must be a positive account ID"))
	}

	for i, n := range cfg.Nicknames {
		if n == "" {
			errs = append(errs, fmt.Errorf("config: nicknames[%d] is empty", i))
		}
	}

	if !logLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Errorf("config: unknown log level %q", cfg.Log.Level))
	}
	if !logFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Errorf("config: unknown log format %q", cfg.Log.Format))
	}

	if cfg.Gateway.Enabled && cfg.Gateway.Bind != "" {
		if _, err := net.ResolveTCPAddr("tcp", cfg.Gateway.Bind); err != nil {
			errs = append(errs, fmt.Errorf("config: invalid gateway bind address %q", cfg.Gateway.Bind))
		}
	}

	return errors.Join(errs...)
}
