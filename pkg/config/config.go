// pkg/config/config.go
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex // protects currentConfig during runtime updates
}

// NewManager creates a new config Manager with a fresh koanf instance.
func NewManager() *Manager {
	return &Manager{
		koanfInstance: koanf.New("."),
	}
}

// DefaultConfig returns a new Config struct populated with hardcoded default
// values. These serve as the baseline configuration if no other sources
// override them.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: DefaultServerConfig(),
		Recent: RecentConfig{
			Limit: 10,
		},
	}
}

// DefaultConfigAsMap returns the default configuration as a nested map for
// the confmap provider.
func DefaultConfigAsMap() map[string]interface{} {
	defaults := DefaultConfig()
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level":  defaults.Log.Level,
			"format": defaults.Log.Format,
		},
		"server": map[string]interface{}{
			"host":               defaults.Server.Host,
			"port":               defaults.Server.Port,
			"port_scan_attempts": defaults.Server.PortScanAttempts,
			"drain_timeout":      defaults.Server.DrainTimeout,
			"read_timeout":       defaults.Server.ReadTimeout,
			"write_timeout":      defaults.Server.WriteTimeout,
			"open_browser":       defaults.Server.OpenBrowser,
		},
		"recent": map[string]interface{}{
			"limit": defaults.Recent.Limit,
			"file":  defaults.Recent.File,
		},
	}
}

// Load merges configuration from all standard sources in priority order
// (defaults, config file, environment, flags) and populates the manager's
// current config.
func (m *Manager) Load(flags *pflag.FlagSet, configFilePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	debug := false
	if flags != nil {
		if debugFlag := flags.Lookup("debug"); debugFlag != nil {
			debug = debugFlag.Value.String() == "true"
		}
	}

	sources := DefaultSources(configFilePath, flags, debug)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority() < sources[j].Priority()
	})

	for _, src := range sources {
		if err := src.Load(m.koanfInstance); err != nil {
			return fmt.Errorf("load config source %s: %w", src.Name(), err)
		}
	}

	var newCfg Config
	if err := m.koanfInstance.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("unmarshal merged config: %w", err)
	}

	if err := newCfg.Server.Validate(); err != nil {
		return err
	}
	if err := newCfg.Recent.Validate(); err != nil {
		return err
	}

	m.currentConfig = newCfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfgCopy := m.currentConfig
	return cfgCopy
}
