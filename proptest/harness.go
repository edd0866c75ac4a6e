// Package proptest holds property-based tests over randomized takeout
// archive collections.
package proptest

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"

	"takeout/internal/archive"
	"takeout/internal/catalog"
)

var iterDirGen = rapid.StringMatching(`[a-z]{8}`)

// Collection is one generated archive set with its ground truth: the exact
// entry listing each zip was written with.
type Collection struct {
	T       *rapid.T
	Dir     string
	Handles []archive.Handle
	Entries map[string][]entry
	Cache   *catalog.Cache
}

func (c *Collection) Build() *catalog.Catalog {
	return c.Cache.Build(catalog.BuildOptions{})
}

func (c *Collection) Rebuild() *catalog.Catalog {
	return c.Cache.Build(catalog.BuildOptions{Force: true})
}

// EntryNames returns the written entry listing for one zip, in order.
func (c *Collection) EntryNames(zipName string) []string {
	names := make([]string, len(c.Entries[zipName]))
	for i, e := range c.Entries[zipName] {
		names[i] = e.Name
	}
	return names
}

// RunWithCollection checks a property against freshly generated collections.
func RunWithCollection(t *testing.T, fn func(c *Collection)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		basenames := genBasenames(rt)
		albumPool := rapid.SliceOfNDistinct(albumNameGen, 1, 4, rapid.ID[string]).Draw(rt, "albums")

		nArchives := rapid.IntRange(minArchives, maxArchives).Draw(rt, "nArchives")
		entries := make(map[string][]entry, nArchives)
		for i := range nArchives {
			name := fmt.Sprintf("takeout-%03d.zip", i)
			entries[name] = genArchiveEntries(rt, basenames, albumPool)
			writeZip(rt, filepath.Join(iterDir, name), entries[name])
		}

		handles, err := archive.Discover(iterDir)
		if err != nil {
			rt.Fatalf("discover archives: %v", err)
		}

		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		fn(&Collection{
			T:       rt,
			Dir:     iterDir,
			Handles: handles,
			Entries: entries,
			Cache:   catalog.NewCache(handles, archive.ZipReader{}, log),
		})
	})
}

func writeZip(t *rapid.T, path string, entries []entry) {
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("add entry %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatalf("write entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close zip file: %v", err)
	}
}
