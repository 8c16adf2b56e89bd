// Package probe implements port-availability probing: a test bind that
// verifies a TCP port is free without holding it.
package probe

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/rs/zerolog/log"
)

// DefaultMaxAttempts is the size of the upward scan window when the
// preferred port is taken.
const DefaultMaxAttempts = 20

var (
	// ErrPortExhausted indicates no free port was found in the scan window.
	ErrPortExhausted = errors.New("no available port in scan window")
	// ErrInvalidPort indicates a preferred port outside 1-65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidAttempts indicates a non-positive scan window.
	ErrInvalidAttempts = errors.New("invalid max attempts")
)

// FindAvailablePort returns the first bindable TCP port at or above
// preferred, scanning upward one port at a time for at most maxAttempts
// candidates. Every returned port was verified with a test bind; the probe
// listener is closed before returning so the port is free for the caller.
//
// host is the interface to probe ("127.0.0.1" for loopback, "" for all).
func FindAvailablePort(host string, preferred, maxAttempts int) (int, error) {
	if preferred < 1 || preferred > 65535 {
		return 0, fmt.Errorf("%w: %d: must be between 1 and 65535", ErrInvalidPort, preferred)
	}
	if maxAttempts < 1 {
		return 0, fmt.Errorf("%w: %d: must be at least 1", ErrInvalidAttempts, maxAttempts)
	}

	for i := 0; i < maxAttempts; i++ {
		port := preferred + i
		if port > 65535 {
			break
		}

		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			log.Debug().
				Str("component", "probe").
				Int("port", port).
				Err(err).
				Msg("Port busy, trying next")
			continue
		}
		// Probe only: release immediately so the caller can bind it.
		if cerr := ln.Close(); cerr != nil {
			log.Warn().
				Str("component", "probe").
				Int("port", port).
				Err(cerr).
				Msg("Failed to close probe listener")
		}

		if port != preferred {
			log.Info().
				Str("component", "probe").
				Int("preferred", preferred).
				Int("port", port).
				Msg("Preferred port busy, selected next free port")
		}
		return port, nil
	}

	last := preferred + maxAttempts - 1
	if last > 65535 {
		last = 65535
	}
	return 0, fmt.Errorf("%w: scanned %d-%d", ErrPortExhausted, preferred, last)
}

// IsAvailable reports whether a single port is bindable right now.
// The result is advisory: the port can be taken between probe and bind.
func IsAvailable(host string, port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}
