package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"takeout/internal/archive"
	"takeout/internal/catalog"
	"takeout/internal/resolve"
)

// ProgressFunc reports batch progress: the current unit, the fixed total,
// and the album being processed.
type ProgressFunc func(current, total int, album string)

const manifestName = "manifest.json"

// Exporter materializes albums into an output directory.
type Exporter struct {
	Cat      *catalog.Catalog
	Resolver *resolve.Resolver
	Reader   archive.Reader
	Log      *slog.Logger

	AlbumProgress ProgressFunc
	FileProgress  ProgressFunc
}

func NewExporter(cat *catalog.Catalog, resolver *resolve.Resolver, reader archive.Reader, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{Cat: cat, Resolver: resolver, Reader: reader, Log: log}
}

// Export writes the assembled file set of every named album under outDir.
// Entries physically inside the album folder keep their relative structure;
// referenced entries are flattened to their basename. Existing destination
// files are skipped, never truncated. Per-entry failures are counted and
// sampled; only the inability to create outDir itself is fatal.
func (e *Exporter) Export(albumNames []string, outDir string) (Stats, error) {
	stats := newStats()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}

	for i, albumName := range albumNames {
		if e.AlbumProgress != nil {
			e.AlbumProgress(i+1, len(albumNames), albumName)
		}

		files, supplemental, ok := assemble(e.Cat, e.Resolver, albumName, true)
		if !ok {
			e.Log.Warn("unknown album, skipping", "album", albumName)
			stats.recordSkip(nil)
			continue
		}

		as := stats.albumStats(albumName)
		albumDir := filepath.Join(outDir, albumName)
		if err := os.MkdirAll(albumDir, 0o755); err != nil {
			stats.recordError(as, ErrorDetail{Album: albumName, Destination: albumDir, Cause: err.Error()})
			continue
		}

		manifest := newManifest(albumName)
		albumFolder := catalog.AlbumFolder(albumName)

		for j, ref := range files {
			if e.FileProgress != nil {
				e.FileProgress(j+1, len(files), albumName)
			}

			relativePath := ref.Basename()
			if rest, inside := strings.CutPrefix(ref.Path, albumFolder); inside {
				if rest == "" {
					continue
				}
				relativePath = rest
			}
			outFile := filepath.Join(albumDir, filepath.FromSlash(relativePath))

			// Skipped files are already materialized, so they still
			// belong in the manifest.
			addEntry := func() {
				if archive.IsMedia(ref.Path) {
					manifest.Entries = append(manifest.Entries,
						manifestEntry(e.Reader, supplemental, ref, relativePath, ""))
				}
			}

			if _, err := os.Stat(outFile); err == nil {
				stats.recordSkip(as)
				addEntry()
				continue
			}

			data, err := e.Reader.ReadFile(ref.Archive, ref.Path)
			if err != nil {
				stats.recordError(as, ErrorDetail{Album: albumName, File: ref.Path, Destination: outFile, Cause: err.Error()})
				continue
			}
			if err := writeFile(outFile, data); err != nil {
				if errors.Is(err, fs.ErrExist) {
					stats.recordSkip(as)
					addEntry()
				} else {
					stats.recordError(as, ErrorDetail{Album: albumName, File: ref.Path, Destination: outFile, Cause: err.Error()})
				}
				continue
			}

			stats.recordFile(as, int64(len(data)))
			addEntry()
		}

		if err := e.writeManifest(albumDir, manifest); err != nil {
			e.Log.Warn("manifest write failed", "album", albumName, "error", err)
		}
		stats.Albums++
	}

	return stats, nil
}

func (e *Exporter) writeManifest(albumDir string, manifest Manifest) error {
	data, err := manifest.encode()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(albumDir, manifestName), data, 0o644)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// O_EXCL keeps the skip-existing promise even when a file appears
	// between the stat above and this write.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
