package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigDir returns the config directory for servr.
// Order: XDG_CONFIG_HOME/servr, platform-specific fallback.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "servr")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("AppData"); appData != "" {
			return filepath.Join(appData, "Servr")
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "servr")
}

// DataDir returns the data directory for servr. The recent-directories
// store lives here.
// Order: XDG_DATA_HOME/servr, platform-specific fallback.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "servr")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("AppData"); appData != "" {
			return filepath.Join(appData, "Servr")
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "servr")
}

// CacheDir returns the cache directory for servr.
// Order: XDG_CACHE_HOME/servr, platform-specific fallback.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "servr")
	}
	if runtime.GOOS == "windows" {
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, "Servr", "Cache")
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "servr")
}
