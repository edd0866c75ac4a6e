// Package batch assembles resolved album file sets and drives bulk export
// to disk or upload to remote storage, emitting a manifest per album.
package batch

import (
	"takeout/internal/archive"
	"takeout/internal/catalog"
	"takeout/internal/resolve"
)

// assemble builds the ordered file set for one album: the album info file,
// direct media (each followed by its album sidecar), then resolved
// references whose basename is not already covered. The dedup key is the
// photo basename, case-sensitive and path-insensitive. ok is false for an
// unknown album.
func assemble(cat *catalog.Catalog, resolver *resolve.Resolver, albumName string, includeMetadata bool) (files []archive.Ref, supplemental map[string]archive.Ref, ok bool) {
	album := cat.Album(albumName)
	if album == nil {
		return nil, nil, false
	}
	supplemental = album.Supplemental

	if includeMetadata && album.InfoFile != nil {
		files = append(files, *album.InfoFile)
	}

	seen := make(map[string]bool)
	appendMedia := func(ref archive.Ref) {
		files = append(files, ref)
		base := ref.Basename()
		seen[base] = true
		if !includeMetadata {
			return
		}
		if sidecar, found := supplemental[base]; found {
			files = append(files, sidecar)
		}
	}

	for _, ref := range album.DirectMedia {
		appendMedia(ref)
	}

	resolution := resolver.Resolve(albumName)
	for _, ref := range resolution.Photos {
		if seen[ref.Basename()] {
			continue
		}
		appendMedia(ref)
	}

	return files, supplemental, true
}
