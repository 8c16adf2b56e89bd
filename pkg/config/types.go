// pkg/config/types.go
package config

import "time"

// Config is the root configuration structure for the servr application.
// It aggregates all other specific configuration structs.
type Config struct {
	Log    LogConfig    `description:"Logging configuration" koanf:"log" yaml:"log"`
	Server ServerConfig `description:"Server configuration" koanf:"server" yaml:"server"`
	Recent RecentConfig `description:"Recent directories configuration" koanf:"recent" yaml:"recent"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `description:"Log level for servr logs" koanf:"level" yaml:"level"`
	Format string `description:"Log format: json | text" koanf:"format" yaml:"format"`
}

// ServerConfig holds configuration for the local static-file server.
// Used by the 'servr serve' command.
type ServerConfig struct {
	// Network settings
	Host string `description:"Listen address" koanf:"host" yaml:"host" validate:"required"`
	Port int    `description:"Preferred listen port" koanf:"port" yaml:"port" validate:"min=1,max=65535"`

	// Port probing
	PortScanAttempts int `description:"Upward scan window when the preferred port is taken" koanf:"port_scan_attempts" yaml:"port_scan_attempts" validate:"min=1,max=1000"`

	// Shutdown
	DrainTimeout time.Duration `description:"Bounded wait for in-flight requests on stop" koanf:"drain_timeout" yaml:"drain_timeout" validate:"min=0"`

	// HTTP timeouts
	ReadTimeout  time.Duration `description:"HTTP read timeout" koanf:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `description:"HTTP write timeout" koanf:"write_timeout" yaml:"write_timeout"`

	// Launcher behavior
	OpenBrowser bool `description:"Open the default browser after start" koanf:"open_browser" yaml:"open_browser"`
}

// RecentConfig holds configuration for the recent-directories store.
type RecentConfig struct {
	Limit int    `description:"Maximum entries kept in the recent list" koanf:"limit" yaml:"limit" validate:"min=1,max=100"`
	File  string `description:"Override path to the recent-directories file" koanf:"file" yaml:"file"`
}
