// Package fsutil contains file system helpers.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir ensures a directory exists.
func EnsureDir(p string) error {
	s, err := os.Stat(p)
	if err == nil {
		if !s.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", p)
		}
		return nil
	}
	if os.IsNotExist(err) {
		return os.MkdirAll(p, 0755)
	}
	return err
}

// EnsurePath ensures the parent directories of a file path exist.
func EnsurePath(p string) error {
	dir := filepath.Dir(p)
	if dir == "" || dir == "." {
		return nil
	}
	return EnsureDir(dir)
}
