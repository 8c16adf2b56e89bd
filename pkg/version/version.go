// pkg/version/version.go
// Package version provides version metadata for the application.
package version

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"
)

// These variables are typically injected at build time using -ldflags
var (
	// Version holds the current version of servr.
	Version = "dev"
	// Commit holds the current version commit of servr.
	Commit = "none"
	// BuildDate holds the build date of servr.
	BuildDate = "unknown"
	// StartDate holds the start date of servr.
	StartDate = time.Now()
)

// updateURL serves the latest released version as a bare string.
var updateURL = "https://update.servr.dev/latest"

// Struct returns version information in a structured format.
type Struct struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("servr %s (commit: %s, date: %s)", Version, Commit, BuildDate)
}

// Get returns version information as a Struct.
func Get() Struct {
	return Struct{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}
}

// IsNewer reports whether latest is a strictly newer release than current.
// Prerelease candidates never count as newer than a stable current build.
func IsNewer(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parse current version %q: %w", current, err)
	}
	next, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("parse latest version %q: %w", latest, err)
	}

	if cur.Prerelease() == "" && next.Prerelease() != "" {
		return false, nil
	}
	return next.GreaterThan(cur), nil
}

// CheckNewVersion checks if a new version is available and logs a hint
// when one is. Dev builds skip the check.
func CheckNewVersion() {
	if Version == "dev" {
		return
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(updateURL)
	if err != nil {
		log.Warn().Err(err).Msg("Error checking new version")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Msgf("Error checking new version: status=%s", resp.Status)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 128))
	if err != nil {
		log.Warn().Err(err).Msg("Error checking new version")
		return
	}

	latest := strings.TrimSpace(string(body))
	newer, err := IsNewer(Version, latest)
	if err != nil {
		log.Warn().Err(err).Msg("Error checking new version")
		return
	}
	if newer {
		log.Warn().Msgf("A new release of servr has been found: %s. Please consider updating.", latest)
	}
}
