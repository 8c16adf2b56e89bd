package server

import (
	"errors"
	"fmt"

	"github.com/servr-dev/servr/pkg/probe"
)

const (
	errorCodePortExhausted    = "SERVER_PORT_EXHAUSTED"
	errorCodeStartFailed      = "SERVER_START_FAILED"
	errorCodeAlreadyRunning   = "SERVER_ALREADY_RUNNING"
	errorCodeDirectoryInvalid = "SERVER_DIRECTORY_INVALID"
	errorCodeForcedStop       = "SERVER_FORCED_STOP"
	errorCodeRuntimeFailed    = "SERVER_RUNTIME_FAILED"
)

var (
	// ErrAlreadyRunning indicates Start was called while a session is active.
	ErrAlreadyRunning = errors.New("server already running")
	// ErrDirectoryInvalid indicates the root directory is missing or unreadable.
	ErrDirectoryInvalid = errors.New("invalid directory")
	// ErrServerStart indicates the listener could not be bound.
	ErrServerStart = errors.New("server start failed")
	// ErrForcedStop indicates the drain timeout elapsed and the server was
	// closed with requests still in flight. The server is stopped regardless.
	ErrForcedStop = errors.New("forced stop: drain timeout exceeded")
)

type errorCoder interface {
	error
	Code() string
}

type withCodeError struct {
	error
	code string
}

func (e *withCodeError) Code() string {
	return e.code
}

func (e *withCodeError) Unwrap() error {
	return e.error
}

// WithErrorCode annotates err with a server error code.
func WithErrorCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &withCodeError{error: err, code: code}
}

// WrapDirectoryInvalid annotates root-directory validation failures.
func WrapDirectoryInvalid(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(fmt.Errorf("%w: %w", ErrDirectoryInvalid, err), errorCodeDirectoryInvalid)
}

// WrapServerStart annotates listener bind failures.
func WrapServerStart(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(fmt.Errorf("%w: %w", ErrServerStart, err), errorCodeStartFailed)
}

// NewAlreadyRunningError reports a Start attempt against an active session.
func NewAlreadyRunningError(s Session) error {
	return WithErrorCode(fmt.Errorf("%w: serving %s on port %d", ErrAlreadyRunning, s.Root, s.Port), errorCodeAlreadyRunning)
}

// ErrorCode resolves a server error to its machine-readable code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var coded errorCoder
	if errors.As(err, &coded) {
		if code := coded.Code(); code != "" {
			return code
		}
	}

	switch {
	case errors.Is(err, probe.ErrPortExhausted):
		return errorCodePortExhausted
	case errors.Is(err, ErrAlreadyRunning):
		return errorCodeAlreadyRunning
	case errors.Is(err, ErrDirectoryInvalid):
		return errorCodeDirectoryInvalid
	case errors.Is(err, ErrServerStart):
		return errorCodeStartFailed
	case errors.Is(err, ErrForcedStop):
		return errorCodeForcedStop
	default:
		return errorCodeRuntimeFailed
	}
}

// ExitCode maps server errors to CLI exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, ErrDirectoryInvalid):
		return 2
	case errors.Is(err, probe.ErrPortExhausted),
		errors.Is(err, ErrServerStart),
		errors.Is(err, ErrAlreadyRunning):
		return 7
	default:
		return 1
	}
}

// Suggestions provides CLI hints for server errors.
func Suggestions(err error) []string {
	if err == nil {
		return nil
	}

	switch ErrorCode(err) {
	case errorCodePortExhausted:
		return []string{
			"Choose a different preferred port:   servr serve --server.port 9000",
			"Widen the scan window:               servr serve --server.port_scan_attempts 50",
		}
	case errorCodeStartFailed:
		return []string{
			"Ensure no other process grabbed the port between probe and bind",
			"Ports below 1024 may need elevated privileges",
		}
	case errorCodeDirectoryInvalid:
		return []string{
			"Check that the directory exists and is readable",
			"Pass the directory explicitly:       servr serve ./dist",
		}
	case errorCodeAlreadyRunning:
		return []string{
			"Stop the running session before starting another",
		}
	case errorCodeForcedStop:
		return []string{
			"Raise the drain timeout:             servr serve --server.drain_timeout 10s",
		}
	default:
		return nil
	}
}
