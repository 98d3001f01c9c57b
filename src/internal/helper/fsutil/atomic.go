// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package fsutil provides filesystem helpers for writing generated artifacts.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// AtomicWrite writes data to path so that readers observe either the previous
// contents or the complete new contents, never a partial file.
//
// The data is written to a temporary file in the destination directory, synced,
// and renamed over path. The temporary file is removed on every failure path.
// Missing parent directories are created with mode 0755.
//
// Parameters:
//   - path: Destination file
//   - data: Complete file contents
//   - mode: Permission bits for the final file
//
// Returns:
//   - error: Error describing the step that failed
func AtomicWrite(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		// Windows cannot rename over an existing file.
		if runtime.GOOS != "windows" {
			return fmt.Errorf("rename temp -> %s: %w", path, err)
		}
		_ = os.Remove(path)
		if err := os.Rename(tmpName, path); err != nil {
			return fmt.Errorf("rename temp -> %s (windows): %w", path, err)
		}
	}
	committed = true

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}
