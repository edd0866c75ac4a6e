package archive

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
)

var ErrNoArchives = errors.New("no zip archives found in directory")

// Handle identifies one physical zip archive. Handles are created once at
// startup by Discover and treated as immutable for the process lifetime.
type Handle struct {
	Path string
	Name string
	Size int64
}

// Ref addresses a single entry inside one archive.
type Ref struct {
	Archive Handle
	Path    string
}

// Basename returns the final path element of the entry. Entry paths are
// always slash-separated regardless of host OS.
func (r Ref) Basename() string {
	return path.Base(r.Path)
}

// Discover lists all *.zip files in dir sorted by name. The resulting slice
// is the fixed, order-stable archive set for the process; the directory is
// not re-scanned mid-run.
func Discover(dir string) ([]Handle, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("archive directory %q: %w", dir, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.zip"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoArchives, dir)
	}
	sort.Strings(matches)

	handles := make([]Handle, 0, len(matches))
	for _, path := range matches {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		handles = append(handles, Handle{
			Path: path,
			Name: filepath.Base(path),
			Size: size,
		})
	}
	return handles, nil
}
