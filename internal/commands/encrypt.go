package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/logging"
	"github.com/idelchi/vernam/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(v *viper.Viper, cfg *config.Config, log *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] FILE",
		Aliases: []string{"enc"},
		Short:   "Encrypt a file with a random key",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(v, cfg, log, func(cfg *config.Config) {
			cfg.Encrypt, cfg.Decrypt = true, false
		}),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg, *log)
		},
	}
}
