package config

import (
	"errors"
	"fmt"
	"strings"
)

var validSources = map[string]bool{
	"auto":   true,
	"native": true,
	"exec":   true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

var validColors = map[string]bool{
	ColorAuto:   true,
	ColorAlways: true,
	ColorNever:  true,
}

// Validate checks the config and returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if !validSources[strings.ToLower(c.Source)] {
		errs = append(errs, fmt.Errorf("source %q must be one of auto, native, exec", c.Source))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d must be at least 1", c.Workers))
	}
	if c.RefreshSeconds < 1 {
		errs = append(errs, fmt.Errorf("refresh_seconds %d must be at least 1", c.RefreshSeconds))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not a known level", c.LogLevel))
	}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		errs = append(errs, fmt.Errorf("log_format %q must be text or json", c.LogFormat))
	}
	if !validColors[strings.ToLower(c.Color)] {
		errs = append(errs, fmt.Errorf("color %q must be auto, always or never", c.Color))
	}

	return errors.Join(errs...)
}
