// Package commands provides the command-line interface for the vernam tool.
//
// It implements:
//   - encryption (vernam -e FILE, vernam encrypt FILE)
//   - decryption (vernam -d CIPHERTEXT KEY, vernam decrypt CIPHERTEXT KEY)
//   - pair checking (vernam check CIPHERTEXT KEY)
//
// The package handles command-line parsing, configuration validation,
// environment variable binding through cobra and viper, and the mapping of
// failures to exit codes.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/logging"
)

// envPrefix prefixes the environment variables mirroring the flags, e.g. VERNAM_CIPHER_EXT.
const envPrefix = "VERNAM"

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// load binds the command's flags and the environment into cfg and
// configures the logger from the result.
func load(v *viper.Viper, cfg *config.Config, log *logging.Logger, cmd *cobra.Command, args []string) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return &config.UsageError{Err: fmt.Errorf("parsing config: %w", err)}
	}

	cfg.Files = args

	log.Quiet = cfg.Quiet
	log.Verbose = cfg.Verbose

	return nil
}

// preRun returns a PreRunE handler that loads and validates the configuration.
// mode, when set, forces the operation of a subcommand.
func preRun(v *viper.Viper, cfg *config.Config, log *logging.Logger, mode func(*config.Config)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := load(v, cfg, log, cmd, args); err != nil {
			return err
		}

		if mode != nil {
			mode(cfg)
		}

		if err := cobraext.Validate(cfg, cfg); err != nil {
			return asUsage(err)
		}

		return nil
	}
}

// asUsage marks err as a usage error unless it already is one.
// Everything rejected before RunE is a problem with the invocation.
func asUsage(err error) error {
	var usage *config.UsageError
	if errors.As(err, &usage) {
		return err
	}

	return &config.UsageError{Err: err}
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &config.UsageError{Err: err}
		}

		return nil
	}
}
