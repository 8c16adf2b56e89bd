package probe

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// reserve grabs an ephemeral port and keeps it bound for the test,
// returning the port number.
func reserve(t *testing.T) (int, net.Listener) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	port := ln.Addr().(*net.TCPAddr).Port
	return port, ln
}

func TestFindAvailablePortPreferredFree(t *testing.T) {
	// Find a free port first, release it, then ask for it as preferred.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	free := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	got, err := FindAvailablePort("127.0.0.1", free, 1)
	require.NoError(t, err)
	require.Equal(t, free, got)
}

func TestFindAvailablePortScansUpward(t *testing.T) {
	busy, _ := reserve(t)

	got, err := FindAvailablePort("127.0.0.1", busy, DefaultMaxAttempts)
	require.NoError(t, err)
	require.Greater(t, got, busy)

	// The returned port must actually be bindable.
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(got)))
	require.NoError(t, err)
	require.NoError(t, ln.Close())
}

func TestFindAvailablePortExhausted(t *testing.T) {
	busy, _ := reserve(t)

	_, err := FindAvailablePort("127.0.0.1", busy, 1)
	require.ErrorIs(t, err, ErrPortExhausted)
}

func TestFindAvailablePortValidation(t *testing.T) {
	tests := []struct {
		name        string
		preferred   int
		maxAttempts int
		wantErr     error
	}{
		{"PortZero", 0, 10, ErrInvalidPort},
		{"PortNegative", -1, 10, ErrInvalidPort},
		{"PortTooHigh", 70000, 10, ErrInvalidPort},
		{"AttemptsZero", 8000, 0, ErrInvalidAttempts},
		{"AttemptsNegative", 8000, -5, ErrInvalidAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindAvailablePort("127.0.0.1", tt.preferred, tt.maxAttempts)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFindAvailablePortStopsAtCeiling(t *testing.T) {
	// A window that would run past 65535 must not wrap around.
	_, err := FindAvailablePort("127.0.0.1", 65535, 10)
	if err != nil {
		require.ErrorIs(t, err, ErrPortExhausted)
	}
}

func TestIsAvailable(t *testing.T) {
	busy, _ := reserve(t)
	require.False(t, IsAvailable("127.0.0.1", busy))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	free := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	require.True(t, IsAvailable("127.0.0.1", free))
}
