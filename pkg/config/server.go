package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
)

var validate = validator.New()

// DefaultServerConfig returns the default server configuration.
// These are sensible defaults for serving a local web build and can be
// overridden via flags, environment variables, or the config file.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:             "127.0.0.1",
		Port:             8000,
		PortScanAttempts: 20,
		DrainTimeout:     5 * time.Second,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     30 * time.Second,
		OpenBrowser:      false,
	}
}

// Validate checks the server configuration against its constraints.
func (c ServerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	return nil
}

// Validate checks the recent-directories configuration.
func (c RecentConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid recent configuration: %w", err)
	}
	return nil
}

// BindServerFlags binds server-specific flags to the provided FlagSet.
// These flags are used by the 'servr serve' command.
//
// Flags are namespaced under 'server.' to avoid conflicts with global flags.
// Example: --server.host, --server.port
func BindServerFlags(flags *pflag.FlagSet) {
	defaults := DefaultServerConfig()

	flags.String("server.host", defaults.Host, "Listen address (use 0.0.0.0 to expose on all interfaces)")
	flags.Int("server.port", defaults.Port, "Preferred listen port")
	flags.Int("server.port_scan_attempts", defaults.PortScanAttempts, "How many ports to scan upward when the preferred port is taken")
	flags.Duration("server.drain_timeout", defaults.DrainTimeout, "Bounded wait for in-flight requests on stop")
	flags.Duration("server.read_timeout", defaults.ReadTimeout, "HTTP read timeout")
	flags.Duration("server.write_timeout", defaults.WriteTimeout, "HTTP write timeout")
	flags.Bool("server.open_browser", defaults.OpenBrowser, "Open the default browser after the server starts")
}
