// Package testsupport builds throwaway takeout-style zip fixtures for tests.
package testsupport

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"takeout/internal/archive"
)

// Entry is one file to place inside a fixture zip. Order is preserved in the
// archive's central directory, which downstream catalog order tests rely on.
type Entry struct {
	Name string
	Body string
}

// WriteZip creates dir/name containing the given entries and returns its
// handle.
func WriteZip(t *testing.T, dir, name string, entries []Entry) archive.Handle {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("add fixture entry %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatalf("write fixture entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close fixture zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture file: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat fixture zip: %v", err)
	}
	return archive.Handle{Path: path, Name: name, Size: info.Size()}
}

// WriteCorrupt creates a file with a .zip name that is not a valid archive.
func WriteCorrupt(t *testing.T, dir, name string) archive.Handle {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write corrupt fixture: %v", err)
	}
	return archive.Handle{Path: path, Name: name, Size: 9}
}
