package encryption

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/idelchi/vernam/internal/config"
	"github.com/idelchi/vernam/internal/fileutil"
	"github.com/idelchi/vernam/internal/logging"
)

// Processor binds the encrypt and decrypt transforms to files on disk.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// naming derives artifact paths
	naming Naming

	// source yields a fresh random byte source per encryption
	source SourceFunc

	log logging.Logger
}

// Option customizes a Processor.
type Option func(*Processor)

// WithSource replaces the random source factory.
func WithSource(source SourceFunc) Option {
	return func(p *Processor) {
		p.source = source
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log logging.Logger) Option {
	return func(p *Processor) {
		p.log = log
	}
}

// NewProcessor creates a new Processor with the given configuration.
func NewProcessor(cfg *config.Config, opts ...Option) (*Processor, error) {
	switch cfg.Source {
	case SourceCrypto, SourceChaCha20, "":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}

	processor := &Processor{
		cfg:    cfg,
		naming: Naming{Suffixes: cfg.Suffixes},
		source: func() (io.Reader, error) {
			return NewSource(cfg.Source)
		},
	}

	for _, opt := range opts {
		opt(processor)
	}

	return processor, nil
}

// Naming returns the path conventions used by the processor.
func (p *Processor) Naming() Naming {
	return p.naming
}

// EncryptFile encrypts src into its ciphertext and key artifacts.
//
// The source is opened before any artifact is created. Both artifacts are flushed and
// synced, key first, before the call returns. In atomic mode neither artifact appears
// at its final path unless both were written completely.
//
//nolint:funlen
func (p *Processor) EncryptFile(src string) (result Result, err error) {
	cipherPath := p.naming.CipherPath(src)
	keyPath := p.naming.KeyPath(src)

	inFile, err := os.Open(filepath.Clean(src))
	if err != nil {
		return Result{}, &IOError{Op: "open", Path: src, Err: err}
	}
	defer inFile.Close()

	source, err := p.source()
	if err != nil {
		return Result{}, &IOError{Op: "random source", Err: err}
	}

	runID := fileutil.NewRunID()
	atomic := !p.cfg.Direct

	p.log.Debugf("encrypting %q (run %s, atomic=%t)", src, runID, atomic)

	keyOut, err := fileutil.NewArtifact(keyPath, runID, atomic)
	if err != nil {
		return Result{}, &IOError{Op: "create", Path: keyPath, Err: err}
	}
	defer keyOut.CleanupOnError(&err)

	cipherOut, err := fileutil.NewArtifact(cipherPath, runID, atomic)
	if err != nil {
		return Result{}, &IOError{Op: "create", Path: cipherPath, Err: err}
	}
	defer cipherOut.CleanupOnError(&err)

	size, err := Encrypt(inFile, cipherOut, keyOut, source)
	if err != nil {
		return Result{}, &IOError{Op: "encrypt", Path: src, Err: err}
	}

	for _, out := range []*fileutil.Artifact{keyOut, cipherOut} {
		if err := out.Sync(); err != nil {
			return Result{}, &IOError{Op: "sync", Path: out.Path, Err: err}
		}
	}

	if err := keyOut.Commit(); err != nil {
		return Result{}, &IOError{Op: "commit", Path: keyPath, Err: err}
	}

	if err := cipherOut.Commit(); err != nil {
		// A fresh key must not sit next to an older ciphertext.
		if discardErr := keyOut.Discard(); discardErr != nil {
			p.log.Warnf("removing key %q after failed commit: %v", keyPath, discardErr)
		}

		return Result{}, &IOError{Op: "commit", Path: cipherPath, Err: err}
	}

	for _, out := range []*fileutil.Artifact{keyOut, cipherOut} {
		if written, err := out.Size(); err == nil {
			p.log.Debugf("committed %q (%d bytes)", out.Path, written)
		}
	}

	return Result{
		Inputs:  []string{src},
		Outputs: []string{cipherPath, keyPath},
		Size:    size,
	}, nil
}

// DecryptFile decrypts cipherPath with keyPath into the derived plaintext path.
//
// Output stops at the end of the shorter input unless strict mode is set, in which
// case differing sizes are rejected before the output is created. The output is always
// written through a temporary file when it would overwrite one of the inputs.
//
//nolint:funlen
func (p *Processor) DecryptFile(cipherPath, keyPath string) (result Result, err error) {
	outPath := p.naming.PlainPath(cipherPath)

	cipherFile, cipherInfo, err := openInput(cipherPath)
	if err != nil {
		return Result{}, err
	}
	defer cipherFile.Close()

	keyFile, keyInfo, err := openInput(keyPath)
	if err != nil {
		return Result{}, err
	}
	defer keyFile.Close()

	if p.cfg.Strict && cipherInfo.Size() != keyInfo.Size() {
		return Result{}, fmt.Errorf("%w: %q is %d bytes, %q is %d bytes",
			ErrLengthMismatch, cipherPath, cipherInfo.Size(), keyPath, keyInfo.Size())
	}

	atomic := !p.cfg.Direct
	if !atomic && aliases(outPath, cipherInfo, keyInfo) {
		p.log.Debugf("%q is also an input, writing through a temporary file", outPath)

		atomic = true
	}

	runID := fileutil.NewRunID()

	p.log.Debugf("decrypting %q with %q (run %s, atomic=%t)", cipherPath, keyPath, runID, atomic)

	out, err := fileutil.NewArtifact(outPath, runID, atomic)
	if err != nil {
		return Result{}, &IOError{Op: "create", Path: outPath, Err: err}
	}
	defer out.CleanupOnError(&err)

	size, err := Decrypt(cipherFile, keyFile, out, p.cfg.Strict)
	if err != nil {
		return Result{}, &IOError{Op: "decrypt", Path: cipherPath, Err: err}
	}

	if err := out.Sync(); err != nil {
		return Result{}, &IOError{Op: "sync", Path: outPath, Err: err}
	}

	if err := out.Commit(); err != nil {
		return Result{}, &IOError{Op: "commit", Path: outPath, Err: err}
	}

	if cipherInfo.Size() != keyInfo.Size() {
		p.log.Warnf("%q (%d bytes) and %q (%d bytes) differ in length, output truncated to %d bytes",
			cipherPath, cipherInfo.Size(), keyPath, keyInfo.Size(), size)
	}

	return Result{
		Inputs:  []string{cipherPath, keyPath},
		Outputs: []string{outPath},
		Size:    size,
	}, nil
}

// openInput opens a file for reading and returns its info.
func openInput(path string) (*os.File, os.FileInfo, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, &IOError{Op: "open", Path: path, Err: err}
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	return file, info, nil
}

// aliases reports whether path refers to one of the given input files.
func aliases(path string, inputs ...os.FileInfo) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	for _, input := range inputs {
		if os.SameFile(info, input) {
			return true
		}
	}

	return false
}
