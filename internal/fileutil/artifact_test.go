package fileutil_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/vernam/internal/fileutil"
)

func TestAtomicArtifactCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.key")
	runID := fileutil.NewRunID()

	artifact, err := fileutil.NewArtifact(path, runID, true)
	if err != nil {
		t.Fatalf("NewArtifact: %v", err)
	}

	if artifact.TmpName != fileutil.TempName(path, runID) {
		t.Errorf("TmpName = %q, want %q", artifact.TmpName, fileutil.TempName(path, runID))
	}

	if _, err := artifact.Write([]byte("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := artifact.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("final path exists before Commit")
	}

	if err := artifact.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	artifact.CleanupOnError(&err)

	data, err := os.ReadFile(path) //nolint:gosec // test path
	if err != nil || string(data) != "payload" {
		t.Fatalf("final file = %q, %v", data, err)
	}

	if _, err := os.Stat(artifact.TmpName); !errors.Is(err, fs.ErrNotExist) {
		t.Error("temporary file still exists after Commit")
	}

	size, err := artifact.Size()
	if err != nil || size != int64(len("payload")) {
		t.Errorf("Size = %d, %v", size, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("artifact permissions = %v, want owner-only", perm)
	}
}

func TestAtomicArtifactCleanupOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.vnm")

	if err := os.WriteFile(path, []byte("previous"), 0o600); err != nil {
		t.Fatal(err)
	}

	artifact, err := fileutil.NewArtifact(path, fileutil.NewRunID(), true)
	if err != nil {
		t.Fatalf("NewArtifact: %v", err)
	}

	if _, err := artifact.Write([]byte("partial")); err != nil {
		t.Fatal(err)
	}

	failed := errors.New("write aborted")
	artifact.CleanupOnError(&failed)

	if _, err := os.Stat(artifact.TmpName); !errors.Is(err, fs.ErrNotExist) {
		t.Error("temporary file survived a failed write")
	}

	data, err := os.ReadFile(path) //nolint:gosec // test path
	if err != nil || string(data) != "previous" {
		t.Errorf("existing file = %q, %v; want it untouched", data, err)
	}
}

func TestDirectArtifact(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.vnm")

	if err := os.WriteFile(path, []byte("a much longer previous content"), 0o600); err != nil {
		t.Fatal(err)
	}

	artifact, err := fileutil.NewArtifact(path, fileutil.NewRunID(), false)
	if err != nil {
		t.Fatalf("NewArtifact: %v", err)
	}

	if artifact.TmpName != "" {
		t.Errorf("direct artifact has temporary file %q", artifact.TmpName)
	}

	if _, err := artifact.Write([]byte("prefix")); err != nil {
		t.Fatal(err)
	}

	failed := errors.New("write aborted")
	artifact.CleanupOnError(&failed)

	data, err := os.ReadFile(path) //nolint:gosec // test path
	if err != nil || string(data) != "prefix" {
		t.Errorf("direct artifact = %q, %v; want the written prefix to remain", data, err)
	}
}

func TestArtifactDiscard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		atomic bool
		commit bool
		remain bool
	}{
		{name: "committed atomic artifact is removed", atomic: true, commit: true, remain: false},
		{name: "committed direct artifact stays", atomic: false, commit: true, remain: true},
		{name: "uncommitted direct artifact stays", atomic: false, commit: false, remain: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "out.key")

			artifact, err := fileutil.NewArtifact(path, fileutil.NewRunID(), tt.atomic)
			if err != nil {
				t.Fatalf("NewArtifact: %v", err)
			}

			var commitErr error
			defer artifact.CleanupOnError(&commitErr)

			if _, err := artifact.Write([]byte("key")); err != nil {
				t.Fatal(err)
			}

			if err := artifact.Sync(); err != nil {
				t.Fatal(err)
			}

			if tt.commit {
				if commitErr = artifact.Commit(); commitErr != nil {
					t.Fatalf("Commit: %v", commitErr)
				}
			}

			if err := artifact.Discard(); err != nil {
				t.Fatalf("Discard: %v", err)
			}

			_, err = os.Stat(path)
			if exists := err == nil; exists != tt.remain {
				t.Errorf("artifact exists = %t after Discard, want %t", exists, tt.remain)
			}
		})
	}
}

func TestNewArtifactUnwritableDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.vnm")

	for _, atomic := range []bool{true, false} {
		if _, err := fileutil.NewArtifact(path, fileutil.NewRunID(), atomic); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("NewArtifact(atomic=%t) error = %v, want %v", atomic, err, fs.ErrNotExist)
		}
	}
}
