package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/logging"
	"github.com/idelchi/vernam/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(v *viper.Viper, cfg *config.Config, log *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] CIPHERTEXT KEY",
		Short: "Verify that a ciphertext and key have the same length",
		Args:  usageArgs(cobra.ExactArgs(2)), //nolint:mnd // ciphertext and key
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := load(v, cfg, log, cmd, args); err != nil {
				return err
			}

			return cfg.ValidateFlags()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunCheck(cfg, *log)
		},
	}
}
