package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsurePath(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "a", "b", "results.db")

	if err := EnsurePath(p); err != nil {
		t.Fatal(err)
	}
	s, err := os.Stat(filepath.Join(tmp, "a", "b"))
	if err != nil || !s.IsDir() {
		t.Fatal("expected parent directories to be created", err)
	}

	// A file in the way is an error.
	f := filepath.Join(tmp, "file")
	if err := os.WriteFile(f, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := EnsurePath(filepath.Join(f, "x")); err == nil {
		t.Fatal("expected error")
	}
}
