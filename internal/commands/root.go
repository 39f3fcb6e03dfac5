package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/logging"
	"github.com/idelchi/vernam/internal/logic"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitUsage   = 1
	ExitFailure = 2
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, log *logging.Logger, version string) *cobra.Command {
	v := newViper()

	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "vernam [flags] FILE [KEY]"
	root.Short = "A simple Vernam cipher implementation"
	root.Long = `A one-time pad file encryption utility.

Encryption writes two files of the same size as FILE: the ciphertext FILE.vnm and
the random key FILE.key. Decryption XORs a ciphertext with its key and writes the
result to the ciphertext path without its .vnm suffix, overwriting any existing file.`
	root.Example = `  vernam -e report.txt
  vernam -d report.txt.vnm report.txt.key`
	root.Version = version
	root.Args = cobra.ArbitraryArgs
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.PreRunE = preRun(v, cfg, log, nil)
	root.RunE = func(_ *cobra.Command, _ []string) error {
		return logic.Run(cfg, *log)
	}

	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.UsageError{Err: err}
	})

	root.Flags().BoolP("encrypt", "e", false, "Encrypt the file with a random key")
	root.Flags().BoolP("decrypt", "d", false, "Decrypt the file with the key")
	if root.Flags().Lookup("version") == nil {
		root.Flags().BoolP("version", "V", false, "Output version information")
	}

	root.PersistentFlags().String("cipher-ext", config.DefaultCipherSuffix, "Suffix of the ciphertext file")
	root.PersistentFlags().String("key-ext", config.DefaultKeySuffix, "Suffix of the key file")
	root.PersistentFlags().String("source", config.DefaultSource, "Random source for the key: crypto or chacha20")
	root.PersistentFlags().Bool("strict", false, "Refuse to decrypt when ciphertext and key lengths differ")
	root.PersistentFlags().
		Bool("direct", false, "Write outputs in place instead of through temporary files renamed on success")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolP("verbose", "v", false, "Print debug output")

	root.AddCommand(
		NewEncryptCommand(v, cfg, log),
		NewDecryptCommand(v, cfg, log),
		NewCheckCommand(v, cfg, log),
	)

	return root
}

// Execute runs the command line and returns the process exit code.
// Usage errors exit with ExitUsage and a help hint, all other failures with ExitFailure.
func Execute(version string, args []string, stdout, stderr io.Writer) int {
	cfg := &config.Config{}
	log := &logging.Logger{Out: stdout, Err: stderr}

	root := NewRootCommand(cfg, log, version)
	if operationRequested(args) {
		// Every free argument names a file, even one called like a subcommand.
		root.ResetCommands()
	}

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	log.Errorf("%v", err)

	var usage *config.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "Try '%s --help' for more information.\n", root.Name())

		return ExitUsage
	}

	return ExitFailure
}

// operationRequested reports whether args select an operation through
// -e/--encrypt or -d/--decrypt before any "--" terminator.
func operationRequested(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "--":
			return false
		case strings.HasPrefix(arg, "--"):
			name, _, _ := strings.Cut(arg[2:], "=")
			if name == "encrypt" || name == "decrypt" {
				return true
			}
		case len(arg) > 1 && arg[0] == '-':
			// Shorthand flags are all booleans, so a cluster such as -qe holds no values.
			if strings.ContainsAny(arg[1:], "ed") {
				return true
			}
		}
	}

	return false
}
