package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
)

// Reader abstracts entry access so the resolver and batch code can be tested
// against in-memory fixtures. Implementations open archives read-only and
// independently per call; no file handle is shared across goroutines.
type Reader interface {
	// List returns entry names in central-directory order without
	// decompressing anything.
	List(h Handle) ([]string, error)
	// ReadFile extracts one entry's bytes. A missing entry returns an error
	// wrapping fs.ErrNotExist so callers can tell absent from unreadable.
	ReadFile(h Handle, name string) ([]byte, error)
}

// ZipReader reads entries from zip archives on disk.
type ZipReader struct{}

func (ZipReader) List(h Handle) ([]string, error) {
	zr, err := zip.OpenReader(h.Path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", h.Name, err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}

func (ZipReader) ReadFile(h Handle, name string) ([]byte, error) {
	zr, err := zip.OpenReader(h.Path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", h.Name, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %s!%s: %w", h.Name, name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read entry %s!%s: %w", h.Name, name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("entry %s!%s: %w", h.Name, name, fs.ErrNotExist)
}
