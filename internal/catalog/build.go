package catalog

import (
	"log/slog"
	"sync"

	"takeout/internal/archive"
	"takeout/internal/scan"
)

// BuildOptions tunes one Build call.
type BuildOptions struct {
	// Force bypasses the memoized catalog and rebuilds.
	Force      bool
	MaxWorkers int
	Progress   scan.ProgressFunc
}

// BuildReport describes what went wrong during a build without failing it.
type BuildReport struct {
	// FailedArchives lists archives that could not be enumerated and so
	// contributed empty entry lists.
	FailedArchives []string
}

// Cache owns the memoized catalog for one archive collection. Reads of a
// built catalog need no synchronization; the cache slot itself is guarded so
// Build/Invalidate are safe to call from command plumbing.
type Cache struct {
	archives []archive.Handle
	reader   archive.Reader
	log      *slog.Logger

	mu      sync.Mutex
	current *Catalog
	report  BuildReport
}

func NewCache(archives []archive.Handle, reader archive.Reader, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{archives: archives, reader: reader, log: log}
}

// Archives returns the fixed archive set this cache indexes.
func (c *Cache) Archives() []archive.Handle {
	return c.archives
}

// Build returns the memoized catalog, constructing it on first need or when
// opts.Force is set. An archive that cannot be opened contributes an empty
// entry list and is recorded in the report; a build never fails because of
// one bad archive.
func (c *Cache) Build(opts BuildOptions) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && !opts.Force {
		return c.current
	}

	cat := &Catalog{
		Archives:        c.archives,
		ByArchive:       make(map[string][]string, len(c.archives)),
		ByAlbum:         make(map[string]*Album),
		MediaByBasename: make(map[string][]archive.Ref),
	}
	report := BuildReport{}

	results := scan.Map(c.archives, c.reader.List, scan.Options{
		MaxWorkers: opts.MaxWorkers,
		Progress:   opts.Progress,
	})

	// Aggregation is strictly serial, in archive order, so the index
	// sequences are reproducible across runs.
	for _, res := range results {
		names := res.Value
		if res.Err != nil {
			c.log.Warn("skipping unreadable archive", "archive", res.Archive.Name, "error", res.Err)
			report.FailedArchives = append(report.FailedArchives, res.Archive.Name)
			names = nil
		}
		cat.ByArchive[res.Archive.Name] = names
		for _, name := range names {
			c.index(cat, archive.Ref{Archive: res.Archive, Path: name})
		}
	}

	c.current = cat
	c.report = report
	return cat
}

func (c *Cache) index(cat *Catalog, ref archive.Ref) {
	base := ref.Basename()
	media := archive.IsMedia(ref.Path)

	if media {
		cat.MediaByBasename[base] = append(cat.MediaByBasename[base], ref)
	}

	albumName := albumOf(ref.Path)
	if albumName == "" {
		return
	}

	album := cat.ByAlbum[albumName]
	if album == nil {
		album = &Album{Name: albumName, Supplemental: make(map[string]archive.Ref)}
		cat.ByAlbum[albumName] = album
	}
	album.Files = append(album.Files, ref)

	switch {
	case media:
		album.DirectMedia = append(album.DirectMedia, ref)
	case ref.Path == AlbumFolder(albumName)+AlbumInfoName:
		// Album-level info sits at the album root. Albums have at most
		// one; last writer wins.
		r := ref
		album.InfoFile = &r
	}

	if photo, ok := splitSupplemental(base); ok {
		if _, exists := album.Supplemental[photo]; !exists {
			album.Supplemental[photo] = ref
		}
	}
}

func splitSupplemental(base string) (string, bool) {
	if len(base) <= len(SupplementalSuffix) || base[len(base)-len(SupplementalSuffix):] != SupplementalSuffix {
		return "", false
	}
	return base[:len(base)-len(SupplementalSuffix)], true
}

// Invalidate drops the cached catalog; the next Build reconstructs it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.report = BuildReport{}
}

// Current returns the cached catalog without building, or nil.
func (c *Cache) Current() *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Report returns the report from the most recent build.
func (c *Cache) Report() BuildReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report
}
