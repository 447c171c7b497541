package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataRoot) == "" {
		return errors.New("data_root is required")
	}
	if !strings.HasPrefix(c.AudioExtension, ".") {
		return fmt.Errorf("audio_extension %q must start with a dot", c.AudioExtension)
	}
	if c.CensSampleRate <= 0 {
		return fmt.Errorf("cens_sample_rate must be positive, got %d", c.CensSampleRate)
	}
	if c.MatrixProfileWindow <= 0 {
		return fmt.Errorf("matrix_profile_window must be positive, got %d", c.MatrixProfileWindow)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MinDurationSeconds < 0 {
		return fmt.Errorf("min_duration_seconds must not be negative, got %v", c.MinDurationSeconds)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}
