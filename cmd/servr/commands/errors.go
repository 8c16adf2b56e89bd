package commands

import "errors"

// silentError marks an error that a command already reported to the user.
// main still maps it to an exit code but must not print it again.
type silentError struct {
	err error
}

func (e *silentError) Error() string { return e.err.Error() }

func (e *silentError) Unwrap() error { return e.err }

func silence(err error) error {
	if err == nil {
		return nil
	}
	return &silentError{err: err}
}

// IsSilent reports whether err was already reported to the user.
func IsSilent(err error) bool {
	var se *silentError
	return errors.As(err, &se)
}
