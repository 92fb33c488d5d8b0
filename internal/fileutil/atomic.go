// Package fileutil writes files so readers never observe a partial write.
package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic streams content produced by write into a temporary sibling of
// filename and renames it into place once it is synced. On any error the
// temporary file is removed and filename is left as it was.
func WriteAtomic(filename string, perm os.FileMode, write func(io.Writer) error) (err error) {
	// The temporary file must share a filesystem with filename for the
	// rename to be atomic.
	staging, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating staging file: %w", err)
	}
	stagingPath := staging.Name()

	closed := false
	defer func() {
		if !closed {
			staging.Close()
		}
		if err != nil {
			os.Remove(stagingPath)
		}
	}()

	if err := write(staging); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := staging.Sync(); err != nil {
		return fmt.Errorf("syncing staging file: %w", err)
	}
	closed = true
	if err := staging.Close(); err != nil {
		return fmt.Errorf("closing staging file: %w", err)
	}

	if err := os.Chmod(stagingPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(stagingPath, filename); err != nil {
		return fmt.Errorf("replacing %s: %w", filename, err)
	}
	return nil
}

// WriteFileAtomic is WriteAtomic for content already in memory
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	})
}
