package config_test

import (
	"errors"
	"testing"

	"github.com/idelchi/vernam/internal/config"
)

func valid() config.Config {
	return config.Config{
		Suffixes: config.Suffixes{Cipher: config.DefaultCipherSuffix, Key: config.DefaultKeySuffix},
		Source:   config.DefaultSource,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		want   error
	}{
		{
			name:   "encrypt one file",
			modify: func(c *config.Config) { c.Encrypt, c.Files = true, []string{"a"} },
		},
		{
			name:   "decrypt two files",
			modify: func(c *config.Config) { c.Decrypt, c.Files = true, []string{"a.vnm", "a.key"} },
		},
		{
			name:   "chacha20 source",
			modify: func(c *config.Config) { c.Encrypt, c.Files, c.Source = true, []string{"a"}, "chacha20" },
		},
		{
			name:   "custom suffix",
			modify: func(c *config.Config) { c.Encrypt, c.Files, c.Suffixes.Cipher = true, []string{"a"}, ".lock" },
		},
		{
			name:   "conflicting operations",
			modify: func(c *config.Config) { c.Encrypt, c.Decrypt, c.Files = true, true, []string{"a", "b"} },
			want:   config.ErrConflictingOptions,
		},
		{
			name:   "no operation",
			modify: func(c *config.Config) { c.Files = []string{"a"} },
			want:   config.ErrNoOperation,
		},
		{
			name:   "encrypt without file",
			modify: func(c *config.Config) { c.Encrypt = true },
			want:   config.ErrMissingArguments,
		},
		{
			name:   "decrypt without key",
			modify: func(c *config.Config) { c.Decrypt, c.Files = true, []string{"a.vnm"} },
			want:   config.ErrMissingArguments,
		},
		{
			name:   "encrypt two files",
			modify: func(c *config.Config) { c.Encrypt, c.Files = true, []string{"a", "b"} },
			want:   config.ErrExtraArguments,
		},
		{
			name:   "decrypt three files",
			modify: func(c *config.Config) { c.Decrypt, c.Files = true, []string{"a", "b", "c"} },
			want:   config.ErrExtraArguments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()

			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}

				return
			}

			var usage *config.UsageError
			if !errors.As(err, &usage) || !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want usage error %v", err, tt.want)
			}
		})
	}
}

func TestValidateFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"empty cipher suffix", func(c *config.Config) { c.Suffixes.Cipher = "" }},
		{"suffix without dot", func(c *config.Config) { c.Suffixes.Cipher = "vnm" }},
		{"bare dot", func(c *config.Config) { c.Suffixes.Key = "." }},
		{"suffix with separator", func(c *config.Config) { c.Suffixes.Key = ".key/x" }},
		{"identical suffixes", func(c *config.Config) { c.Suffixes.Cipher = c.Suffixes.Key }},
		{"unknown source", func(c *config.Config) { c.Source = "dice" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.modify(&cfg)

			var usage *config.UsageError
			if err := cfg.ValidateFlags(); !errors.As(err, &usage) {
				t.Fatalf("ValidateFlags() = %v, want usage error", err)
			}
		})
	}

	cfg := valid()
	if err := cfg.ValidateFlags(); err != nil {
		t.Fatalf("ValidateFlags() on defaults = %v", err)
	}
}
