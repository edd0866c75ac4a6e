package proptest

import (
	"path"
	"strings"

	"pgregory.net/rapid"

	"takeout/internal/archive"
	"takeout/internal/catalog"
)

const (
	InvEntryConservation    = "INV-1"
	InvMediaIndexComplete   = "INV-2"
	InvMediaIndexSound      = "INV-3"
	InvAlbumMembership      = "INV-4"
	InvSupplementalFirstWin = "INV-5"
	InvResolveDeterministic = "INV-10"
	InvResolveTotal         = "INV-11"
	InvResolveFromIndex     = "INV-12"
	InvResolveSorted        = "INV-13"
)

// verifyCatalogInvariants checks the built catalog against the ground-truth
// entry listing the collection was written with.
func verifyCatalogInvariants(t *rapid.T, c *Collection, cat *catalog.Catalog) {
	mediaCount := make(map[string]int)
	for _, h := range c.Handles {
		names := c.EntryNames(h.Name)
		got := cat.Entries(h)
		if len(got) != len(names) {
			t.Fatalf("[%s] violated: %s has %d cataloged entries, wrote %d", InvEntryConservation, h.Name, len(got), len(names))
		}
		for i, name := range names {
			if got[i] != name {
				t.Fatalf("[%s] violated: %s entry %d is %q, wrote %q", InvEntryConservation, h.Name, i, got[i], name)
			}
			if archive.IsMedia(name) {
				mediaCount[name]++
			}
		}
	}

	indexed := 0
	for base, refs := range cat.MediaByBasename {
		for _, ref := range refs {
			if ref.Basename() != base {
				t.Fatalf("[%s] violated: ref %q indexed under basename %q", InvMediaIndexSound, ref.Path, base)
			}
			if !archive.IsMedia(ref.Path) {
				t.Fatalf("[%s] violated: non-media %q in media index", InvMediaIndexSound, ref.Path)
			}
			indexed++
		}
	}
	written := 0
	for _, n := range mediaCount {
		written += n
	}
	if indexed != written {
		t.Fatalf("[%s] violated: %d media refs indexed, %d written", InvMediaIndexComplete, indexed, written)
	}

	for name, album := range cat.ByAlbum {
		folder := catalog.AlbumFolder(name)
		for _, ref := range album.Files {
			if !strings.HasPrefix(ref.Path, folder) {
				t.Fatalf("[%s] violated: album %q holds foreign entry %q", InvAlbumMembership, name, ref.Path)
			}
		}
		verifyFirstSeen(t, c, name, album)
	}
}

// verifyFirstSeen recomputes the supplemental map by scanning the written
// listings in archive order and compares it against the catalog's.
func verifyFirstSeen(t *rapid.T, c *Collection, albumName string, album *catalog.Album) {
	folder := catalog.AlbumFolder(albumName)
	expected := make(map[string]archive.Ref)
	for _, h := range c.Handles {
		for _, name := range c.EntryNames(h.Name) {
			if !strings.HasPrefix(name, folder) || !strings.HasSuffix(name, catalog.SupplementalSuffix) {
				continue
			}
			base := strings.TrimSuffix(path.Base(name), catalog.SupplementalSuffix)
			if _, ok := expected[base]; !ok {
				expected[base] = archive.Ref{Archive: h, Path: name}
			}
		}
	}

	if len(album.Supplemental) != len(expected) {
		t.Fatalf("[%s] violated: album %q has %d supplemental refs, expected %d",
			InvSupplementalFirstWin, albumName, len(album.Supplemental), len(expected))
	}
	for base, want := range expected {
		got, ok := album.Supplemental[base]
		if !ok {
			t.Fatalf("[%s] violated: album %q missing supplemental %q", InvSupplementalFirstWin, albumName, base)
		}
		if got != want {
			t.Fatalf("[%s] violated: album %q supplemental %q is %s!%s, first occurrence is %s!%s",
				InvSupplementalFirstWin, albumName, base, got.Archive.Name, got.Path, want.Archive.Name, want.Path)
		}
	}
}
