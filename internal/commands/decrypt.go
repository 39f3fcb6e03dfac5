package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/logging"
	"github.com/idelchi/vernam/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(v *viper.Viper, cfg *config.Config, log *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] CIPHERTEXT KEY",
		Aliases: []string{"dec"},
		Short:   "Decrypt a file with its key",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(v, cfg, log, func(cfg *config.Config) {
			cfg.Encrypt, cfg.Decrypt = false, true
		}),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg, *log)
		},
	}
}
