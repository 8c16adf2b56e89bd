package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()

	require.Equal(t, "127.0.0.1", cfg.Host)
	require.Equal(t, 8000, cfg.Port)
	require.Equal(t, 20, cfg.PortScanAttempts)
	require.Equal(t, 5*time.Second, cfg.DrainTimeout)
	require.Equal(t, 30*time.Second, cfg.ReadTimeout)
	require.Equal(t, 30*time.Second, cfg.WriteTimeout)
	require.False(t, cfg.OpenBrowser)
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"Defaults", func(c *ServerConfig) {}, false},
		{"PortZero", func(c *ServerConfig) { c.Port = 0 }, true},
		{"PortTooHigh", func(c *ServerConfig) { c.Port = 70000 }, true},
		{"EmptyHost", func(c *ServerConfig) { c.Host = "" }, true},
		{"NoScanAttempts", func(c *ServerConfig) { c.PortScanAttempts = 0 }, true},
		{"HugeScanWindow", func(c *ServerConfig) { c.PortScanAttempts = 5000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBindServerFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindServerFlags(flags)

	err := flags.Parse([]string{
		"--server.host=0.0.0.0",
		"--server.port=9090",
		"--server.port_scan_attempts=5",
		"--server.open_browser=true",
	})
	require.NoError(t, err)

	host, err := flags.GetString("server.host")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", host)

	port, err := flags.GetInt("server.port")
	require.NoError(t, err)
	require.Equal(t, 9090, port)

	attempts, err := flags.GetInt("server.port_scan_attempts")
	require.NoError(t, err)
	require.Equal(t, 5, attempts)

	open, err := flags.GetBool("server.open_browser")
	require.NoError(t, err)
	require.True(t, open)
}

func TestBindServerFlagsDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindServerFlags(flags)

	defaults := DefaultServerConfig()

	port, err := flags.GetInt("server.port")
	require.NoError(t, err)
	require.Equal(t, defaults.Port, port)

	drain, err := flags.GetDuration("server.drain_timeout")
	require.NoError(t, err)
	require.Equal(t, defaults.DrainTimeout, drain)
}
