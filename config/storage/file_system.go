// Package storage provides atomic file updates with rotating backups for
// the config file and activation script.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// AtomicWriteFile replaces the file at path via write-to-temp-then-rename,
// so a crash mid-write cannot corrupt the original. When createBackup is
// set, a timestamped backup of the previous content is kept first.
func AtomicWriteFile(path string, data []byte, createBackup bool) error {
	if createBackup && FileExists(path) {
		bm := NewBackupManager(DefaultBackupRetention)
		if _, err := bm.CreateBackup(path); err != nil {
			return fmt.Errorf("failed to create backup file: %w", err)
		}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	tmpFile.Close()

	if err := os.Chmod(tmpFile.Name(), 0600); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	// Rename is atomic on POSIX systems.
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	if createBackup {
		bm := NewBackupManager(DefaultBackupRetention)
		// Non-fatal: the update itself succeeded.
		_ = bm.CleanupOldBackups(path)
	}

	return nil
}
