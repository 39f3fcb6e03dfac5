// Package logic implements the orchestration behind the vernam commands.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/encryption"
	"github.com/idelchi/vernam/internal/logging"
)

// Run encrypts or decrypts the files named in cfg.
func Run(cfg *config.Config, log logging.Logger, opts ...encryption.Option) error {
	if err := validateInputs(cfg.Files); err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(cfg, append([]encryption.Option{encryption.WithLogger(log)}, opts...)...)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	start := time.Now()

	var (
		result encryption.Result
		verb   string
	)

	if cfg.Decrypt {
		verb = "Decrypted"
		result, err = proc.DecryptFile(cfg.Files[0], cfg.Files[1])
	} else {
		verb = "Encrypted"
		result, err = proc.EncryptFile(cfg.Files[0])
	}

	if err != nil {
		return err
	}

	log.Infof("%s %q -> %q (%s)", verb, result.Inputs[0], result.Outputs, size(result.Size))
	log.Debugf("finished in %s", time.Since(start).Round(time.Millisecond))

	return nil
}

// validateInputs rejects paths that do not name existing regular files.
func validateInputs(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return &config.UsageError{Err: fmt.Errorf("'%s' %w", path, config.ErrNotAFile)}
		}
	}

	return nil
}

func size(n int64) string {
	//nolint:gosec // sizes are never negative
	return humanize.IBytes(uint64(max(0, n)))
}
