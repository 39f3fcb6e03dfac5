package encryption

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned in strict mode when ciphertext and key differ in length.
	ErrLengthMismatch = errors.New("ciphertext and key lengths differ")
	// ErrShortRandom is returned when the random source cannot supply enough bytes.
	ErrShortRandom = errors.New("random source exhausted")
	// ErrUnknownSource is returned for an unrecognized random source name.
	ErrUnknownSource = errors.New("unknown random source")
)

// IOError describes a failure to open, read, write, flush, sync or rename an artifact.
type IOError struct {
	Op   string // "open", "create", "encrypt", "decrypt", "sync", "commit", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
