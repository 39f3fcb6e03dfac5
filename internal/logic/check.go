package logic

import (
	"fmt"
	"os"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/encryption"
	"github.com/idelchi/vernam/internal/logging"
)

// RunCheck reports whether a ciphertext and key pair have matching lengths.
// Decrypting a mismatched pair silently truncates the output, so this is the
// read-only way to detect it beforehand.
func RunCheck(cfg *config.Config, log logging.Logger) error {
	if len(cfg.Files) != 2 { //nolint:mnd // ciphertext and key
		return &config.UsageError{Err: config.ErrMissingArguments}
	}

	if err := validateInputs(cfg.Files); err != nil {
		return err
	}

	cipherPath, keyPath := cfg.Files[0], cfg.Files[1]

	sizes := make([]int64, 0, len(cfg.Files))

	for _, path := range cfg.Files {
		info, err := os.Stat(path)
		if err != nil {
			return &encryption.IOError{Op: "stat", Path: path, Err: err}
		}

		sizes = append(sizes, info.Size())

		log.Infof("%s: %s (%d bytes)", path, size(info.Size()), info.Size())
	}

	if sizes[0] != sizes[1] {
		return fmt.Errorf("%w: %q is %d bytes, %q is %d bytes",
			encryption.ErrLengthMismatch, cipherPath, sizes[0], keyPath, sizes[1])
	}

	log.Infof("%q and %q form a complete pair, decrypting yields %q",
		cipherPath, keyPath, encryption.Naming{Suffixes: cfg.Suffixes}.PlainPath(cipherPath))

	return nil
}
