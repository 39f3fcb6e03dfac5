// Package fileutil provides durable, optionally atomic, file writes.
package fileutil

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

const (
	ownerReadWrite = 0o600
	bufferSize     = 64 * 1024
)

// Artifact is a buffered output file that is flushed and synced before it becomes final.
//
// An atomic artifact is written to a hidden temporary file next to Path and renamed
// into place by Commit. A direct artifact truncates and writes Path itself.
type Artifact struct {
	// Path is the final location of the artifact.
	Path string
	// TmpName is the temporary file backing an atomic artifact, empty otherwise.
	TmpName string

	file      *os.File
	writer    *bufio.Writer
	committed bool
}

// NewRunID returns an identifier shared by the temporary files of one operation.
func NewRunID() string {
	return uuid.NewString()
}

// TempName returns the temporary file name used for path within runID.
func TempName(path, runID string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+runID+".tmp")
}

// NewArtifact opens path for writing. Caller must defer CleanupOnError.
func NewArtifact(path, runID string, atomic bool) (*Artifact, error) {
	artifact := &Artifact{Path: path}

	var (
		file *os.File
		err  error
	)

	if atomic {
		artifact.TmpName = TempName(path, runID)

		file, err = os.OpenFile(artifact.TmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ownerReadWrite)
		if err != nil {
			return nil, fmt.Errorf("creating temporary file: %w", err)
		}
	} else {
		file, err = os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, ownerReadWrite)
		if err != nil {
			return nil, fmt.Errorf("creating output file: %w", err)
		}
	}

	artifact.file = file
	artifact.writer = bufio.NewWriterSize(file, bufferSize)

	return artifact, nil
}

// Write implements io.Writer through the artifact's buffer.
func (a *Artifact) Write(p []byte) (int, error) {
	return a.writer.Write(p) //nolint:wrapcheck // callers wrap with context
}

// Sync flushes buffered data and forces the file to durable storage.
func (a *Artifact) Sync() error {
	if err := a.writer.Flush(); err != nil {
		return fmt.Errorf("flushing: %w", err)
	}

	if err := a.file.Sync(); err != nil {
		return fmt.Errorf("syncing: %w", err)
	}

	return nil
}

// Commit closes the artifact. Atomic artifacts are renamed into place and their
// directory is synced so the rename survives a crash. Sync must be called first.
func (a *Artifact) Commit() error {
	if err := a.file.Close(); err != nil {
		return fmt.Errorf("closing: %w", err)
	}

	if a.TmpName != "" {
		if err := os.Rename(a.TmpName, a.Path); err != nil {
			return fmt.Errorf("renaming output file: %w", err)
		}

		if err := syncDir(filepath.Dir(a.Path)); err != nil {
			return err
		}
	}

	a.committed = true

	return nil
}

// CleanupOnError closes the file and removes the temporary file if the write failed.
// Direct artifacts keep whatever prefix was written.
func (a *Artifact) CleanupOnError(errp *error) {
	if *errp != nil && !a.committed && a.TmpName == "" {
		a.writer.Flush() //nolint:errcheck,gosec // best-effort, keeps the prefix
	}

	a.file.Close() //nolint:errcheck,gosec // best-effort cleanup, may already be closed

	if *errp != nil && !a.committed && a.TmpName != "" {
		os.Remove(a.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}

// Discard removes a committed atomic artifact from its final path.
// Direct artifacts and artifacts that were never committed are left alone.
func (a *Artifact) Discard() error {
	if !a.committed || a.TmpName == "" {
		return nil
	}

	if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %q: %w", a.Path, err)
	}

	a.committed = false

	return syncDir(filepath.Dir(a.Path))
}

// Size returns the size of the artifact at its final path.
func (a *Artifact) Size() (int64, error) {
	info, err := os.Stat(a.Path)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", a.Path, err)
	}

	return info.Size(), nil
}

// syncDir flushes directory metadata, making renames within it durable.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	handle, err := os.Open(filepath.Clean(dir))
	if err != nil {
		return fmt.Errorf("opening directory %q: %w", dir, err)
	}

	syncErr := handle.Sync()
	closeErr := handle.Close()

	if err := errors.Join(syncErr, closeErr); err != nil {
		return fmt.Errorf("syncing directory %q: %w", dir, err)
	}

	return nil
}
