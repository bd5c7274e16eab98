package config

import (
	"fmt"
	"net"
)

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Device.Address == "" {
		return fmt.Errorf("device.address is required")
	}
	if _, _, err := net.SplitHostPort(cfg.Device.Address); err != nil {
		return fmt.Errorf("device.address must be host:port: %w", err)
	}
	if cfg.Device.ConnectTimeout <= 0 {
		return fmt.Errorf("device.connect_timeout must be positive")
	}
	if cfg.Device.HandshakeTimeout <= 0 {
		return fmt.Errorf("device.handshake_timeout must be positive")
	}
	if cfg.Device.StatusInterval < 0 {
		return fmt.Errorf("device.status_interval must not be negative")
	}

	if cfg.Web.Enabled {
		if cfg.Web.Port <= 0 || cfg.Web.Port > 65535 {
			return fmt.Errorf("web.port must be between 1 and 65535")
		}
	}

	if cfg.Database.Enabled && cfg.Database.Path == "" {
		return fmt.Errorf("database.path is required when database is enabled")
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port <= 0 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be between 1 and 65535")
		}
		if cfg.Metrics.Path == "" {
			return fmt.Errorf("metrics.path is required when metrics is enabled")
		}
	}

	return nil
}
