// Package config holds the runtime configuration of vernam and its validation.
package config

import (
	"fmt"
)

const (
	// DefaultCipherSuffix is appended to the source path to name the ciphertext artifact.
	DefaultCipherSuffix = ".vnm"
	// DefaultKeySuffix is appended to the source path to name the key artifact.
	DefaultKeySuffix = ".key"
	// DefaultSource is the random source used for key streams.
	DefaultSource = "crypto"
)

// Suffixes names the derived artifacts of an encryption.
type Suffixes struct {
	Cipher string `mapstructure:"cipher-ext" validate:"required,suffix,nefield=Key" label:"--cipher-ext"`
	Key    string `mapstructure:"key-ext"    validate:"required,suffix"              label:"--key-ext"`
}

type Config struct {
	// Operation selection
	Encrypt bool
	Decrypt bool

	// Common flags
	Suffixes Suffixes `mapstructure:",squash"`
	Source   string   `validate:"oneof=crypto chacha20" label:"--source"`
	Strict   bool
	Direct   bool
	Quiet    bool
	Verbose  bool

	// Positional arguments
	Files []string
}

// Validate checks the flags and that the positional arguments fit the selected operation.
func (c *Config) Validate() error {
	if c.Encrypt && c.Decrypt {
		return &UsageError{Err: ErrConflictingOptions}
	}

	if err := c.ValidateFlags(); err != nil {
		return err
	}

	switch {
	case !c.Encrypt && !c.Decrypt:
		return &UsageError{Err: ErrNoOperation}
	case c.Encrypt && len(c.Files) < 1, c.Decrypt && len(c.Files) < 2:
		return &UsageError{Err: ErrMissingArguments}
	case c.Encrypt && len(c.Files) > 1, c.Decrypt && len(c.Files) > 2:
		return &UsageError{Err: fmt.Errorf("%w: %q", ErrExtraArguments, c.Files)}
	}

	return nil
}

// ValidateFlags validates the configuration against the struct tags.
func (c *Config) ValidateFlags() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return &UsageError{Err: fmt.Errorf("validating configuration: %w", err)}
	}

	return nil
}
