package config

import "errors"

var (
	// ErrNoOperation is returned when neither encryption nor decryption was requested.
	ErrNoOperation = errors.New("one of --encrypt or --decrypt is required")
	// ErrConflictingOptions is returned when encryption and decryption are both requested.
	ErrConflictingOptions = errors.New("conflicting options: '--encrypt', '--decrypt'")
	// ErrMissingArguments is returned when too few positional arguments are given.
	ErrMissingArguments = errors.New("missing argument(s)")
	// ErrExtraArguments is returned when too many positional arguments are given.
	ErrExtraArguments = errors.New("too many arguments")
	// ErrNotAFile is returned when an input path is missing or not a regular file.
	ErrNotAFile = errors.New("is not a file")
)

// UsageError reports invalid invocation. It is detected before any file is touched.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}
