// Package catalog builds and serves the in-memory index over a takeout
// archive collection: entries per archive, per-album structure, and the
// global basename index used for reference resolution.
package catalog

import (
	"sort"
	"strings"

	"takeout/internal/archive"
)

const (
	// AlbumRoot is the fixed two-segment prefix album folders live under.
	AlbumRoot = "Takeout/Google Photos/"
	// SupplementalSuffix marks a per-photo album sidecar.
	SupplementalSuffix = ".supplemental-metadata.json"
	// AlbumInfoName is the album-level info file at the album root.
	AlbumInfoName = "metadata.json"
)

// Album is the reconstructed logical view of one album folder, possibly
// split across several archives.
type Album struct {
	Name        string
	Files       []archive.Ref
	DirectMedia []archive.Ref
	InfoFile    *archive.Ref
	// Supplemental maps photo basename to its album sidecar. First
	// occurrence wins; an album holds at most one sidecar per basename.
	Supplemental map[string]archive.Ref
}

// AlbumFolder returns the canonical in-archive folder prefix for an album.
func AlbumFolder(name string) string {
	return AlbumRoot + name + "/"
}

// Catalog is the aggregate index. It is built once and never mutated
// afterwards; consumers treat it as an immutable snapshot.
type Catalog struct {
	Archives        []archive.Handle
	ByArchive       map[string][]string
	ByAlbum         map[string]*Album
	MediaByBasename map[string][]archive.Ref
}

// Album returns the album record, or nil when unknown.
func (c *Catalog) Album(name string) *Album {
	return c.ByAlbum[name]
}

// AlbumNames returns all album names sorted.
func (c *Catalog) AlbumNames() []string {
	names := make([]string, 0, len(c.ByAlbum))
	for name := range c.ByAlbum {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the cached entry listing for one archive, in archive order.
func (c *Catalog) Entries(h archive.Handle) []string {
	return c.ByArchive[h.Name]
}

// TotalEntries counts entries across all archives.
func (c *Catalog) TotalEntries() int {
	total := 0
	for _, names := range c.ByArchive {
		total += len(names)
	}
	return total
}

// albumOf extracts the album name from an entry path, or "" when the path
// does not sit strictly under AlbumRoot/<album>/.
func albumOf(name string) string {
	rest, ok := strings.CutPrefix(name, AlbumRoot)
	if !ok {
		return ""
	}
	album, _, ok := strings.Cut(rest, "/")
	if !ok {
		// Shallower paths (a file directly under the root) are ignored.
		return ""
	}
	return album
}
